// Package srtlog extracts geotagging metadata from the subtitle-style log
// files OpenCamera writes next to video recordings. Parsing is deliberately
// lenient: these logs are long and routinely contain lines the parser cannot
// use, so malformed blocks are skipped rather than failing the call.
package srtlog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bstardust/opencamera-meta-export/internal/csvtable"
	"github.com/bstardust/opencamera-meta-export/internal/fshelper"
	"github.com/bstardust/opencamera-meta-export/internal/geo"
	"github.com/bstardust/opencamera-meta-export/internal/logger"
	"github.com/bstardust/opencamera-meta-export/internal/progress"
)

// Record is the metadata extracted from one numbered log block.
type Record struct {
	DateTime   string
	Lat        float64
	Lng        float64
	Heading    float64
	Altitude   float64
	FrameStart time.Time
	FrameEnd   time.Time
}

// Columns is the fixed column order for exported video log tables.
var Columns = []string{
	"datetime", "lat", "lng", "heading", "altitude", "frame_start", "frame_end",
}

// frameTimeLayout matches the hour:minute:second,millisecond frame timestamps.
const frameTimeLayout = "15:04:05,000"

// coordSplit carries the punctuation set of the log's coordinate line. The
// token offsets used in parseBlock are a fixed external contract; do not
// generalize.
var coordSplit = regexp.MustCompile(`[°'", ]`)

// Extract reads the log at path and returns one record per block that parses
// cleanly, in file order. Only a missing or unreadable file is an error. When
// writeTable is set the records are also exported to the working directory
// under a name derived from the input file.
func Extract(path string, writeTable bool) ([]*Record, error) {
	if err := fshelper.CheckRegularFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	rep := progress.New()
	rep.Start("video log data", 1)
	records := scan(strings.Split(string(data), "\n"))
	rep.Finish(len(records))

	if writeTable {
		if _, err := WriteTable(records, path, ""); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// scan walks the lines looking for block headers. A line whose entire content
// is the current counter value starts a block; only an exact match advances
// the counter. A block that fails to parse is dropped and scanning continues.
func scan(lines []string) []*Record {
	counter := 1
	var records []*Record

	for i, line := range lines {
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n != counter {
			continue
		}
		counter++

		rec, err := parseBlock(lines, i)
		if err != nil {
			logger.Debug("Skipping block %d: %v", n, err)
			continue
		}
		records = append(records, rec)
	}

	return records
}

// parseBlock interprets the three fixed-offset lines following a block header
// at index i: timing, datetime, and coordinates.
func parseBlock(lines []string, i int) (*Record, error) {
	if i+3 >= len(lines) {
		return nil, fmt.Errorf("truncated block")
	}

	timing := strings.SplitN(lines[i+1], "-->", 2)
	if len(timing) != 2 {
		return nil, fmt.Errorf("timing line has no arrow marker")
	}

	startTok := strings.Fields(timing[0])
	if len(startTok) == 0 {
		return nil, fmt.Errorf("timing line has no start timestamp")
	}
	start, err := time.Parse(frameTimeLayout, startTok[0])
	if err != nil {
		return nil, fmt.Errorf("parse frame start: %w", err)
	}
	// The end timestamp carries a stray leading space in the source data.
	end, err := time.Parse(frameTimeLayout, strings.TrimSpace(strings.TrimRight(timing[1], "\r")))
	if err != nil {
		return nil, fmt.Errorf("parse frame end: %w", err)
	}

	loc := coordSplit.Split(lines[i+3], -1)
	if len(loc) < 13 {
		return nil, fmt.Errorf("coordinate line has %d tokens, want at least 13", len(loc))
	}

	lat, err := tokenDMS(loc[0:3])
	if err != nil {
		return nil, fmt.Errorf("parse latitude: %w", err)
	}
	// Tokens 3-4 are separator artifacts; longitude starts at 5.
	lng, err := tokenDMS(loc[5:8])
	if err != nil {
		return nil, fmt.Errorf("parse longitude: %w", err)
	}

	altitude, err := strconv.ParseFloat(strings.SplitN(loc[10], "m", 2)[0], 64)
	if err != nil {
		return nil, fmt.Errorf("parse altitude: %w", err)
	}
	heading, err := strconv.ParseFloat(loc[12], 64)
	if err != nil {
		return nil, fmt.Errorf("parse heading: %w", err)
	}

	return &Record{
		DateTime:   strings.TrimRight(lines[i+2], "\r"),
		Lat:        lat,
		Lng:        lng,
		Heading:    heading,
		Altitude:   altitude,
		FrameStart: start,
		FrameEnd:   end,
	}, nil
}

// tokenDMS converts a degree/minute/second integer triplet to decimal degrees.
func tokenDMS(tokens []string) (float64, error) {
	var parts [3]int64
	for i, tok := range tokens {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, err
		}
		parts[i] = v
	}

	dms := geo.DMS{
		Degrees: geo.Rational{Num: parts[0], Den: 1},
		Minutes: geo.Rational{Num: parts[1], Den: 1},
		Seconds: geo.Rational{Num: parts[2], Den: 1},
	}
	return dms.Decimal("")
}

// Values renders the record as table fields keyed by column name.
func (r *Record) Values() map[string]string {
	return map[string]string{
		"datetime":    r.DateTime,
		"lat":         strconv.FormatFloat(r.Lat, 'f', 6, 64),
		"lng":         strconv.FormatFloat(r.Lng, 'f', 6, 64),
		"heading":     strconv.FormatFloat(r.Heading, 'f', -1, 64),
		"altitude":    strconv.FormatFloat(r.Altitude, 'f', -1, 64),
		"frame_start": r.FrameStart.Format(frameTimeLayout),
		"frame_end":   r.FrameEnd.Format(frameTimeLayout),
	}
}

// TableName derives the output table name from the log file name.
func TableName(srcPath string) string {
	base := strings.Split(filepath.Base(srcPath), ".")[0]
	return "metaData-" + base + ".csv"
}

// WriteTable exports records to a table named after srcPath under dir (the
// working directory when dir is empty) and returns the written path.
func WriteTable(records []*Record, srcPath, dir string) (string, error) {
	path := filepath.Join(dir, TableName(srcPath))
	progress.New().Export(path)

	rows := make([]map[string]string, len(records))
	for i, rec := range records {
		rows[i] = rec.Values()
	}

	if err := csvtable.Write(path, Columns, rows, csvtable.NewPromptPolicy()); err != nil {
		return "", fmt.Errorf("write table %s: %w", path, err)
	}
	return path, nil
}

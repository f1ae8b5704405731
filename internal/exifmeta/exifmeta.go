// Package exifmeta extracts the geotagging and orientation metadata the
// OpenCamera app embeds in JPEG EXIF blocks. Extraction is strict: a record
// is only produced when every required field is present.
package exifmeta

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/bstardust/opencamera-meta-export/internal/devices"
	"github.com/bstardust/opencamera-meta-export/internal/fshelper"
	"github.com/bstardust/opencamera-meta-export/internal/geo"
	"github.com/bstardust/opencamera-meta-export/pkg/common"
)

// Record is the metadata extracted from a single image.
type Record struct {
	DateTime    string
	ImgWidth    int
	ImgHeight   int
	FocalLength float64
	Lat         float64
	Lng         float64
	Heading     float64
	Altitude    float64
	Yaw         float64
	Pitch       float64
	Roll        float64

	// Device is set only when the make/model matches a known sensor profile.
	Device *devices.Profile

	// ImgName is the basename of the source path, attached in batch mode only.
	ImgName string
}

// Columns is the fixed column order for exported image tables.
var Columns = []string{
	"datetime", "imgwidth", "imgheight", "focallength",
	"lat", "lng", "heading", "altitude",
	"yaw", "pitch", "roll",
	"senwidth", "senheight", "h_fov", "imgname",
}

// Extract decodes the EXIF block of the image at path and assembles a record.
// It returns a FileNotFoundError, MetadataMissingError, or FieldMissingError
// depending on what is absent.
func Extract(path string) (*Record, error) {
	if err := fshelper.CheckRegularFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, common.NewMetadataMissing(path, "no EXIF metadata found")
	}

	// The GPS sub-dictionary is required; its absence is a metadata-level
	// failure. Individual tags missing from a present sub-dictionary are
	// field-level failures, reported as each field is read below.
	if !hasGeotags(x) {
		return nil, common.NewMetadataMissing(path, "no EXIF geotagging found")
	}

	rec := &Record{}

	if rec.DateTime, err = stringField(x, exif.DateTimeOriginal); err != nil {
		return nil, err
	}
	if rec.ImgWidth, err = intField(x, exif.ImageWidth); err != nil {
		return nil, err
	}
	if rec.ImgHeight, err = intField(x, exif.ImageLength); err != nil {
		return nil, err
	}
	if rec.FocalLength, err = ratField(x, exif.FocalLength); err != nil {
		return nil, err
	}
	if rec.Lat, err = dmsField(x, exif.GPSLatitude, exif.GPSLatitudeRef); err != nil {
		return nil, err
	}
	if rec.Lng, err = dmsField(x, exif.GPSLongitude, exif.GPSLongitudeRef); err != nil {
		return nil, err
	}
	if rec.Heading, err = ratField(x, exif.GPSImgDirection); err != nil {
		return nil, err
	}
	if rec.Altitude, err = ratField(x, exif.GPSAltitude); err != nil {
		return nil, err
	}

	comment, err := rawField(x, exif.UserComment)
	if err != nil {
		return nil, err
	}
	if rec.Yaw, rec.Pitch, rec.Roll, err = parseOrientation(comment); err != nil {
		return nil, err
	}

	make, err := stringField(x, exif.Make)
	if err != nil {
		return nil, err
	}
	model, err := stringField(x, exif.Model)
	if err != nil {
		return nil, err
	}
	if profile, ok := devices.Lookup(make, model); ok {
		rec.Device = &profile
	}

	return rec, nil
}

// gpsMarkers lists the tags whose presence marks the image as carrying a
// GPS sub-dictionary at all.
var gpsMarkers = []exif.FieldName{
	exif.GPSVersionID,
	exif.GPSLatitude,
	exif.GPSLongitude,
	exif.GPSAltitude,
	exif.GPSImgDirection,
	exif.GPSDateStamp,
}

func hasGeotags(x *exif.Exif) bool {
	for _, name := range gpsMarkers {
		if _, err := x.Get(name); err == nil {
			return true
		}
	}
	return false
}

// orientationSplit carries the delimiter set of the vendor comment encoding.
// The token offsets below are a fixed external contract; do not generalize.
var orientationSplit = regexp.MustCompile("[\x00^:,]")

func parseOrientation(comment string) (yaw, pitch, roll float64, err error) {
	tokens := orientationSplit.Split(comment, -1)
	if len(tokens) < 9 {
		return 0, 0, 0, fmt.Errorf("orientation comment has %d fields, want at least 9", len(tokens))
	}

	if yaw, err = strconv.ParseFloat(strings.TrimSpace(tokens[4]), 64); err != nil {
		return 0, 0, 0, fmt.Errorf("parse yaw: %w", err)
	}
	if pitch, err = strconv.ParseFloat(strings.TrimSpace(tokens[6]), 64); err != nil {
		return 0, 0, 0, fmt.Errorf("parse pitch: %w", err)
	}
	if roll, err = strconv.ParseFloat(strings.TrimSpace(tokens[8]), 64); err != nil {
		return 0, 0, 0, fmt.Errorf("parse roll: %w", err)
	}
	return yaw, pitch, roll, nil
}

func dmsField(x *exif.Exif, name, refName exif.FieldName) (float64, error) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, common.NewFieldMissing(string(name))
	}

	var dms geo.DMS
	for i, part := range []*geo.Rational{&dms.Degrees, &dms.Minutes, &dms.Seconds} {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return 0, common.NewFieldMissing(string(name))
		}
		part.Num, part.Den = num, den
	}

	ref, err := stringField(x, refName)
	if err != nil {
		return 0, err
	}

	return dms.Decimal(ref)
}

func stringField(x *exif.Exif, name exif.FieldName) (string, error) {
	tag, err := x.Get(name)
	if err != nil {
		return "", common.NewFieldMissing(string(name))
	}
	s, err := tag.StringVal()
	if err != nil {
		return "", common.NewFieldMissing(string(name))
	}
	return strings.TrimRight(s, "\x00"), nil
}

func intField(x *exif.Exif, name exif.FieldName) (int, error) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, common.NewFieldMissing(string(name))
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, common.NewFieldMissing(string(name))
	}
	return v, nil
}

func ratField(x *exif.Exif, name exif.FieldName) (float64, error) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, common.NewFieldMissing(string(name))
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return 0, common.NewFieldMissing(string(name))
	}
	return geo.Rational{Num: num, Den: den}.Float()
}

// rawField returns the undecoded tag payload. The orientation comment is an
// undefined-type tag whose encoding prefix the positional split relies on.
func rawField(x *exif.Exif, name exif.FieldName) (string, error) {
	tag, err := x.Get(name)
	if err != nil {
		return "", common.NewFieldMissing(string(name))
	}
	return string(tag.Val), nil
}

// Values renders the record as table fields keyed by column name. Device
// constants are omitted entirely when no profile matched.
func (r *Record) Values() map[string]string {
	vals := map[string]string{
		"datetime":    r.DateTime,
		"imgwidth":    strconv.Itoa(r.ImgWidth),
		"imgheight":   strconv.Itoa(r.ImgHeight),
		"focallength": formatFloat(r.FocalLength),
		"lat":         strconv.FormatFloat(r.Lat, 'f', 6, 64),
		"lng":         strconv.FormatFloat(r.Lng, 'f', 6, 64),
		"heading":     formatFloat(r.Heading),
		"altitude":    formatFloat(r.Altitude),
		"yaw":         formatFloat(r.Yaw),
		"pitch":       formatFloat(r.Pitch),
		"roll":        formatFloat(r.Roll),
	}
	if r.Device != nil {
		vals["senwidth"] = formatFloat(r.Device.SensorWidthMM)
		vals["senheight"] = formatFloat(r.Device.SensorHeightMM)
		vals["h_fov"] = formatFloat(r.Device.HorizontalFOVDeg)
	}
	if r.ImgName != "" {
		vals["imgname"] = r.ImgName
	}
	return vals
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

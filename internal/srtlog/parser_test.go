package srtlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bstardust/opencamera-meta-export/pkg/common"
)

const sampleLog = `1
00:00:00,000 --> 00:00:01,000
2021-05-20 10:51:50
60°27'14" N,22°16'44" E,25.0m, 270.5°

2
00:00:01,000 --> 00:00:02,000
2021-05-20 10:51:51
garbage line with no coordinates

3
00:00:02,000 --> 00:00:03,000
2021-05-20 10:51:52
60°27'15" N,22°16'45" E,26.0m, 271.5°
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VID_20210520_105150.srt")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractSkipsMalformedBlocks(t *testing.T) {
	records, err := Extract(writeLog(t, sampleLog), false)
	assert.NoError(t, err)

	// Block 2 has an unparseable coordinate line and must be silently absent.
	assert.Len(t, records, 2)
	assert.Equal(t, "2021-05-20 10:51:50", records[0].DateTime)
	assert.Equal(t, "2021-05-20 10:51:52", records[1].DateTime)
}

func TestExtractCoordinates(t *testing.T) {
	records, err := Extract(writeLog(t, sampleLog), false)
	assert.NoError(t, err)
	assert.NotEmpty(t, records)

	rec := records[0]
	assert.Equal(t, 60.453889, rec.Lat)
	assert.Equal(t, 22.278889, rec.Lng)
	assert.Equal(t, 270.5, rec.Heading)
	assert.Equal(t, 25.0, rec.Altitude)
	assert.Equal(t, "00:00:00,000", rec.FrameStart.Format(frameTimeLayout))
	assert.Equal(t, "00:00:01,000", rec.FrameEnd.Format(frameTimeLayout))
}

func TestExtractIgnoresNonCounterNumbers(t *testing.T) {
	// A numeric line that does not match the counter must not start a block.
	log := "99\nnot a timing line\n\n" + sampleLog
	records, err := Extract(writeLog(t, log), false)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExtractTruncatedBlock(t *testing.T) {
	log := "1\n00:00:00,000 --> 00:00:01,000\n"
	records, err := Extract(writeLog(t, log), false)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractFileNotFound(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.srt"), false)

	var notFound *common.FileNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "metaData-VID_20210520_105150.csv",
		TableName("videos/VID_20210520_105150.srt"))
}

func TestWriteTable(t *testing.T) {
	records, err := Extract(writeLog(t, sampleLog), false)
	assert.NoError(t, err)

	dir := t.TempDir()
	path, err := WriteTable(records, "VID_20210520_105150.srt", dir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "metaData-VID_20210520_105150.csv"), path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "datetime,lat,lng,heading,altitude,frame_start,frame_end", lines[0])
	// Frame times contain the comma fraction separator, so csv quotes them.
	assert.Equal(t, `2021-05-20 10:51:50,60.453889,22.278889,270.5,25,"00:00:00,000","00:00:01,000"`, lines[1])
}

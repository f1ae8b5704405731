package exifmeta

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// tiffEntry is one IFD entry of the little-endian TIFF streams the tests
// below assemble. Values longer than four bytes go through data and are
// placed after the IFDs; short ones are inlined.
type tiffEntry struct {
	tag    uint16
	typ    uint16
	count  uint32
	inline []byte
	data   []byte
}

const (
	typeByte      = 1
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeUndefined = 7
)

func leU16(v uint16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

func leU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// rationals packs numerator/denominator pairs.
func rationals(pairs ...uint32) []byte {
	var b []byte
	for _, v := range pairs {
		b = append(b, leU32(v)...)
	}
	return b
}

func serializeIFD(entries []tiffEntry, dataStart uint32) (ifd, data []byte) {
	var ib, db bytes.Buffer
	ib.Write(leU16(uint16(len(entries))))
	for _, e := range entries {
		ib.Write(leU16(e.tag))
		ib.Write(leU16(e.typ))
		ib.Write(leU32(e.count))
		if e.data != nil {
			ib.Write(leU32(dataStart + uint32(db.Len())))
			db.Write(e.data)
		} else {
			v := append([]byte{}, e.inline...)
			for len(v) < 4 {
				v = append(v, 0)
			}
			ib.Write(v[:4])
		}
	}
	ib.Write(leU32(0)) // no next IFD
	return ib.Bytes(), db.Bytes()
}

// buildTIFF assembles a one-IFD EXIF stream carrying the fields Extract
// requires, plus the given GPS sub-dictionary. A nil gps omits the GPS
// pointer entirely.
func buildTIFF(gps []tiffEntry) []byte {
	comment := []byte("ASCII\x00\x00\x00yaw:286.5,pitch:-37.25,roll:-1.5")

	ifd0 := []tiffEntry{
		{tag: 0x0100, typ: typeShort, count: 1, inline: leU16(4032)},
		{tag: 0x0101, typ: typeShort, count: 1, inline: leU16(3024)},
		{tag: 0x010f, typ: typeASCII, count: 8, data: []byte("samsung\x00")},
		{tag: 0x0110, typ: typeASCII, count: 9, data: []byte("SM-A505F\x00")},
		{tag: 0x9003, typ: typeASCII, count: 20, data: []byte("2021:05:20 10:51:50\x00")},
		{tag: 0x920a, typ: typeRational, count: 1, data: rationals(23, 5)},
		{tag: 0x9286, typ: typeUndefined, count: uint32(len(comment)), data: comment},
	}

	n0 := len(ifd0)
	if gps != nil {
		n0++
	}
	ifd0Size := 2 + 12*n0 + 4
	gpsSize := 0
	if gps != nil {
		gpsSize = 2 + 12*len(gps) + 4
		ifd0 = append(ifd0, tiffEntry{tag: 0x8825, typ: typeLong, count: 1, inline: leU32(uint32(8 + ifd0Size))})
	}
	dataStart := uint32(8 + ifd0Size + gpsSize)

	ifd0Bytes, ifd0Data := serializeIFD(ifd0, dataStart)
	var gpsBytes, gpsData []byte
	if gps != nil {
		gpsBytes, gpsData = serializeIFD(gps, dataStart+uint32(len(ifd0Data)))
	}

	var buf bytes.Buffer
	buf.WriteString("II")
	buf.Write(leU16(42))
	buf.Write(leU32(8))
	buf.Write(ifd0Bytes)
	buf.Write(gpsBytes)
	buf.Write(ifd0Data)
	buf.Write(gpsData)
	return buf.Bytes()
}

// gpsEntries is the full GPS sub-dictionary: 60°27'14" N, 22°16'44" E,
// 25m altitude, heading 270.5°.
func gpsEntries() []tiffEntry {
	return []tiffEntry{
		{tag: 0x0000, typ: typeByte, count: 4, inline: []byte{2, 3, 0, 0}},
		{tag: 0x0001, typ: typeASCII, count: 2, inline: []byte("N\x00")},
		{tag: 0x0002, typ: typeRational, count: 3, data: rationals(60, 1, 27, 1, 14, 1)},
		{tag: 0x0003, typ: typeASCII, count: 2, inline: []byte("E\x00")},
		{tag: 0x0004, typ: typeRational, count: 3, data: rationals(22, 1, 16, 1, 44, 1)},
		{tag: 0x0006, typ: typeRational, count: 1, data: rationals(25, 1)},
		{tag: 0x0011, typ: typeRational, count: 1, data: rationals(541, 2)},
	}
}

func writeTIFF(t *testing.T, name string, gps []tiffEntry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buildTIFF(gps), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

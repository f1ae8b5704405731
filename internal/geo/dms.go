// internal/geo/dms.go
package geo

import (
	"errors"
	"math"
)

// ErrZeroDenominator is returned when a rational field carries a zero denominator.
var ErrZeroDenominator = errors.New("zero denominator in rational value")

// Rational is a raw EXIF rational exactly as stored on disk.
type Rational struct {
	Num int64
	Den int64
}

// Float reduces the rational to a floating value.
func (r Rational) Float() (float64, error) {
	if r.Den == 0 {
		return 0, ErrZeroDenominator
	}
	return float64(r.Num) / float64(r.Den), nil
}

// DMS is a sexagesimal coordinate: degrees, minutes, seconds.
type DMS struct {
	Degrees Rational
	Minutes Rational
	Seconds Rational
}

// Decimal converts the coordinate to signed decimal degrees, rounded to
// 6 decimal places. A reference of "S" or "W" negates the result.
func (d DMS) Decimal(ref string) (float64, error) {
	deg, err := d.Degrees.Float()
	if err != nil {
		return 0, err
	}
	min, err := d.Minutes.Float()
	if err != nil {
		return 0, err
	}
	sec, err := d.Seconds.Float()
	if err != nil {
		return 0, err
	}

	min /= 60.0
	sec /= 3600.0

	if ref == "S" || ref == "W" {
		deg = -deg
		min = -min
		sec = -sec
	}

	return Round6(deg + min + sec), nil
}

// Round6 rounds a value to 6 decimal places.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

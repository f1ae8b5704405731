package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownDevice(t *testing.T) {
	p, ok := Lookup("samsung", "sm-a505f")
	assert.True(t, ok)
	assert.Equal(t, 5.18, p.SensorWidthMM)
	assert.Equal(t, 3.89, p.SensorHeightMM)
	assert.Equal(t, 66.8, p.HorizontalFOVDeg)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	p, ok := Lookup("Samsung", "SM-A505F")
	assert.True(t, ok)
	assert.Equal(t, 66.8, p.HorizontalFOVDeg)
}

func TestLookupUnknownDevice(t *testing.T) {
	_, ok := Lookup("apple", "iphone 12")
	assert.False(t, ok)
}

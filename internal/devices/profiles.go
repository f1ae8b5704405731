// internal/devices/profiles.go
package devices

import "strings"

// Profile holds the fixed sensor geometry for a known phone camera.
type Profile struct {
	SensorWidthMM    float64
	SensorHeightMM   float64
	HorizontalFOVDeg float64
}

// profiles is keyed by normalized "make/model". Adding a device is a data
// change here, not a code change.
var profiles = map[string]Profile{
	"samsung/sm-a505f": {
		SensorWidthMM:    5.18,
		SensorHeightMM:   3.89,
		HorizontalFOVDeg: 66.8,
	},
}

// Lookup returns the sensor profile for a make/model pair. The comparison is
// case-insensitive.
func Lookup(make, model string) (Profile, bool) {
	p, ok := profiles[key(make, model)]
	return p, ok
}

func key(make, model string) string {
	return strings.ToLower(strings.TrimSpace(make)) + "/" + strings.ToLower(strings.TrimSpace(model))
}

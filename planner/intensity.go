package planner

import "fmt"

// Intensity controls how widely the model explores the test space.
type Intensity string

const (
	// IntensityFocused asks for a tight, high-signal set of tests.
	IntensityFocused Intensity = "focused"

	// IntensityComprehensive asks for a broad, exploratory set.
	IntensityComprehensive Intensity = "comprehensive"
)

// IsValid returns true if the intensity is valid.
func (i Intensity) IsValid() bool {
	switch i {
	case IntensityFocused, IntensityComprehensive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the intensity.
func (i Intensity) String() string {
	return string(i)
}

// Temperature maps the intensity to the sampling temperature used for
// the model call.
func (i Intensity) Temperature() float64 {
	if i == IntensityComprehensive {
		return 0.8
	}
	return 0.3
}

// ParseIntensity parses a string into an Intensity value.
func ParseIntensity(s string) (Intensity, error) {
	i := Intensity(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid intensity: %s", s)
	}
	return i, nil
}

// AllIntensities returns all valid intensities.
func AllIntensities() []Intensity {
	return []Intensity{IntensityFocused, IntensityComprehensive}
}

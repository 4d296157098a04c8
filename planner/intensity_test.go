package planner

import "testing"

func TestIntensityTemperature(t *testing.T) {
	tests := []struct {
		intensity Intensity
		want      float64
	}{
		{IntensityFocused, 0.3},
		{IntensityComprehensive, 0.8},
	}

	for _, tt := range tests {
		if got := tt.intensity.Temperature(); got != tt.want {
			t.Errorf("Temperature(%s) = %v, want %v", tt.intensity, got, tt.want)
		}
	}
}

func TestParseIntensity(t *testing.T) {
	i, err := ParseIntensity("comprehensive")
	if err != nil {
		t.Fatalf("ParseIntensity() error = %v", err)
	}
	if i != IntensityComprehensive {
		t.Errorf("ParseIntensity() = %v", i)
	}

	if _, err := ParseIntensity("aggressive"); err == nil {
		t.Error("ParseIntensity() expected error for unknown intensity")
	}
}

func TestAllIntensitiesValid(t *testing.T) {
	for _, i := range AllIntensities() {
		if !i.IsValid() {
			t.Errorf("intensity %q not valid", i)
		}
	}
	if Intensity("").IsValid() {
		t.Error("empty intensity reported valid")
	}
}

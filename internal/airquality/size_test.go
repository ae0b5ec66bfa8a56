package airquality

import "testing"

func TestMarkerSizeWithinRange(t *testing.T) {
	scale := DefaultSizeScale()

	values := []float64{-50, 0, 0.4, 15, 120, 238.78, 277.45, 283.98, 10000}
	for _, p := range Pollutants() {
		for _, v := range values {
			size := scale.MarkerSize(p, v)
			if size < scale.Base || size > scale.Base+scale.Range {
				t.Errorf("MarkerSize(%s, %.2f) = %.2f outside [%.0f, %.0f]",
					p, v, size, scale.Base, scale.Base+scale.Range)
			}
		}
	}
}

func TestMarkerSizeClamps(t *testing.T) {
	scale := DefaultSizeScale()

	if got := scale.MarkerSize(PM25, -10); got != scale.Base {
		t.Errorf("below-calibration value: got %.2f, want base %.0f", got, scale.Base)
	}
	if got := scale.MarkerSize(PM25, 1e6); got != scale.Base+scale.Range {
		t.Errorf("above-calibration value: got %.2f, want %.0f", got, scale.Base+scale.Range)
	}
}

// TestMarkerSizeDegenerateCalibration covers Max == Min: no division by zero,
// t pinned to 0.
func TestMarkerSizeDegenerateCalibration(t *testing.T) {
	scale := SizeScale{
		Base:  25,
		Range: 40,
		Calibrations: map[Pollutant]Calibration{
			PM25: {Min: 10, Max: 10},
		},
	}

	if got := scale.MarkerSize(PM25, 50); got != 25 {
		t.Errorf("degenerate calibration: got %.2f, want 25", got)
	}
}

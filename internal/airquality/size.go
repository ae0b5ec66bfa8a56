package airquality

import "github.com/broadway-air/airquality-dashboard/internal/common"

// Calibration is the empirical value range used to scale marker sizes for a
// pollutant. It comes from historical data, not from the loaded dataset, so
// marker sizes stay comparable across exports.
type Calibration struct {
	Min float64
	Max float64
}

// SizeScale converts a concentration into a map marker size in pixels.
// Output is always within [Base, Base+Range].
type SizeScale struct {
	Base  float64
	Range float64

	Calibrations map[Pollutant]Calibration
}

// DefaultSizeScale returns the marker sizing used by the map view.
func DefaultSizeScale() SizeScale {
	return SizeScale{
		Base:  25,
		Range: 40,
		Calibrations: map[Pollutant]Calibration{
			PM1:  {Min: 0.4, Max: 238.78},
			PM25: {Min: 0.69, Max: 277.45},
			PM10: {Min: 7.67, Max: 283.98},
		},
	}
}

// MarkerSize maps a value onto [Base, Base+Range] via the pollutant's
// calibration range, clamping values outside it. A degenerate calibration
// (Max == Min) yields the base size rather than dividing by zero.
func (s SizeScale) MarkerSize(p Pollutant, value float64) float64 {
	cal := s.Calibrations[p]

	t := 0.0
	if cal.Max > cal.Min {
		t = common.Clamp01((value - cal.Min) / (cal.Max - cal.Min))
	}

	return s.Base + t*s.Range
}

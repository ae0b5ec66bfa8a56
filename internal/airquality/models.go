package airquality

import (
	"fmt"
	"time"
)

// Pollutant identifies a particulate-matter size fraction tracked by the dashboard.
type Pollutant string

const (
	PM25 Pollutant = "PM2.5"
	PM10 Pollutant = "PM10"
	PM1  Pollutant = "PM1"
)

// Pollutants lists the supported pollutants in display order.
func Pollutants() []Pollutant {
	return []Pollutant{PM25, PM10, PM1}
}

// ParsePollutant maps a request string onto a known Pollutant.
func ParsePollutant(s string) (Pollutant, error) {
	switch Pollutant(s) {
	case PM25, PM10, PM1:
		return Pollutant(s), nil
	}
	return "", fmt.Errorf("unknown pollutant %q", s)
}

// Guideline returns the WHO 24-hour average guideline for a pollutant in µg/m³.
// There is no WHO guideline for PM1, so the second return is false for it.
func Guideline(p Pollutant) (float64, bool) {
	switch p {
	case PM25:
		return 15, true
	case PM10:
		return 45, true
	}
	return 0, false
}

// Reading is one row of the measurement export: a single sensor's averages over
// the [From, Till) interval. Pollutant and climate fields are nil when the
// export cell was empty; nil must never be collapsed to zero.
type Reading struct {
	SensorID    int       `json:"sensorId"`
	From        time.Time `json:"from"`
	Till        time.Time `json:"till"`
	PM1         *float64  `json:"pm1,omitempty"`
	PM25        *float64  `json:"pm25,omitempty"`
	PM10        *float64  `json:"pm10,omitempty"`
	Temperature *float64  `json:"temperatureC,omitempty"`
	Humidity    *float64  `json:"humidityPct,omitempty"`
}

// Value returns the reading's concentration for the given pollutant,
// or nil when that measurement is absent.
func (r Reading) Value(p Pollutant) *float64 {
	switch p {
	case PM1:
		return r.PM1
	case PM25:
		return r.PM25
	case PM10:
		return r.PM10
	}
	return nil
}

// SummaryStat holds per-sensor descriptive statistics for one pollutant.
// StdDev is nil when fewer than two values exist; AboveGuidelinePct is nil
// for pollutants without a WHO guideline.
type SummaryStat struct {
	SensorID          int      `json:"sensorId"`
	Name              string   `json:"name"`
	Count             int      `json:"count"`
	Mean              float64  `json:"mean"`
	Median            float64  `json:"median"`
	Min               float64  `json:"min"`
	Max               float64  `json:"max"`
	StdDev            *float64 `json:"stdDev,omitempty"`
	CoveragePct       float64  `json:"coveragePct"`
	AboveGuidelinePct *float64 `json:"aboveGuidelinePct,omitempty"`
}

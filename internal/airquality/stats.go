package airquality

import (
	"math"
	"sort"
	"time"
)

// Summarize computes per-sensor descriptive statistics for one pollutant,
// in sensor-table order. Sensors with no present values for the pollutant
// are omitted; readings from unknown sensors never reach this view.
func Summarize(readings []Reading, p Pollutant, sensors *SensorTable) []SummaryStat {
	values := make(map[int][]float64)
	totals := make(map[int]int)

	for _, r := range readings {
		if _, ok := sensors.Resolve(r.SensorID); !ok {
			continue
		}
		totals[r.SensorID]++
		if v := r.Value(p); v != nil {
			values[r.SensorID] = append(values[r.SensorID], *v)
		}
	}

	guideline, hasGuideline := Guideline(p)

	out := make([]SummaryStat, 0, len(values))
	for _, info := range sensors.All() {
		vals := values[info.SensorID]
		if len(vals) == 0 {
			continue
		}

		stat := SummaryStat{
			SensorID: info.SensorID,
			Name:     info.Name,
			Count:    len(vals),
			Mean:     mean(vals),
			Median:   median(vals),
			Min:      minOf(vals),
			Max:      maxOf(vals),
			// Coverage counts absent rows in the denominator: it measures how
			// complete the sensor's record is, not how clean.
			CoveragePct: float64(len(vals)) / float64(totals[info.SensorID]) * 100,
		}

		if sd, ok := sampleStdDev(vals); ok {
			stat.StdDev = &sd
		}

		if hasGuideline {
			above := 0
			for _, v := range vals {
				if v > guideline {
					above++
				}
			}
			pct := float64(above) / float64(len(vals)) * 100
			stat.AboveGuidelinePct = &pct
		}

		out = append(out, stat)
	}
	return out
}

// PollutantCoverage is whole-dataset completeness for one pollutant.
type PollutantCoverage struct {
	Pollutant   Pollutant `json:"pollutant"`
	CoveragePct float64   `json:"coveragePct"`
}

// SensorRecordCount is the number of raw records a known sensor contributed.
type SensorRecordCount struct {
	SensorID int    `json:"sensorId"`
	Name     string `json:"name"`
	Records  int    `json:"records"`
}

// Overview describes the loaded dataset independently of any pollutant
// selection.
type Overview struct {
	TotalRecords         int                 `json:"totalRecords"`
	FirstReading         time.Time           `json:"firstReading"`
	LastReading          time.Time           `json:"lastReading"`
	SensorCount          int                 `json:"sensorCount"`
	Coverage             []PollutantCoverage `json:"coverage"`
	SensorRecords        []SensorRecordCount `json:"sensorRecords"`
	UnknownSensorRecords int                 `json:"unknownSensorRecords"`
}

// BuildOverview computes the dataset overview: record count, date range,
// distinct sensors, per-pollutant coverage, and per-sensor record counts.
// UnknownSensorRecords is the data-quality note for readings whose sensor id
// is missing from the sensor table.
func BuildOverview(readings []Reading, sensors *SensorTable) Overview {
	o := Overview{TotalRecords: len(readings)}

	distinct := make(map[int]struct{})
	perSensor := make(map[int]int)
	present := make(map[Pollutant]int)

	for _, r := range readings {
		distinct[r.SensorID] = struct{}{}

		if o.FirstReading.IsZero() || r.From.Before(o.FirstReading) {
			o.FirstReading = r.From
		}
		if r.From.After(o.LastReading) {
			o.LastReading = r.From
		}

		if _, ok := sensors.Resolve(r.SensorID); ok {
			perSensor[r.SensorID]++
		} else {
			o.UnknownSensorRecords++
		}

		for _, p := range Pollutants() {
			if r.Value(p) != nil {
				present[p]++
			}
		}
	}

	o.SensorCount = len(distinct)

	for _, p := range Pollutants() {
		pct := 0.0
		if len(readings) > 0 {
			pct = float64(present[p]) / float64(len(readings)) * 100
		}
		o.Coverage = append(o.Coverage, PollutantCoverage{Pollutant: p, CoveragePct: pct})
	}

	for _, info := range sensors.All() {
		if n := perSensor[info.SensorID]; n > 0 {
			o.SensorRecords = append(o.SensorRecords, SensorRecordCount{
				SensorID: info.SensorID,
				Name:     info.Name,
				Records:  n,
			})
		}
	}

	return o
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// sampleStdDev uses the n-1 denominator; it is undefined for fewer than two
// values.
func sampleStdDev(vals []float64) (float64, bool) {
	if len(vals) < 2 {
		return 0, false
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1)), true
}

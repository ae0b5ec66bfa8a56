package airquality

import (
	"fmt"
	"sort"
	"time"
)

// SeriesPoint is one plotted measurement in the raw time series.
type SeriesPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// SensorSeries groups a sensor's time series for one pollutant. Name is empty
// for sensors missing from the sensor table; their raw data is still shown.
type SensorSeries struct {
	SensorID int           `json:"sensorId"`
	Name     string        `json:"name,omitempty"`
	Points   []SeriesPoint `json:"points"`
}

// WeeklyBucket is the mean over all readings sharing a weekday and hour,
// regardless of calendar week.
type WeeklyBucket struct {
	Day       int     `json:"day"`
	Hour      int     `json:"hour"`
	TimeIndex int     `json:"timeIndex"`
	Mean      float64 `json:"mean"`
	Count     int     `json:"count"`
}

// SensorWeekly is one sensor's weekly pattern, buckets ordered by TimeIndex.
// Slots with no observations are simply missing.
type SensorWeekly struct {
	SensorID int            `json:"sensorId"`
	Name     string         `json:"name"`
	Buckets  []WeeklyBucket `json:"buckets"`
}

// HourBucket is the mean for one hour of a selected weekday.
type HourBucket struct {
	Hour  int     `json:"hour"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// SensorDay is one sensor's hourly pattern for a single weekday.
type SensorDay struct {
	SensorID int          `json:"sensorId"`
	Name     string       `json:"name"`
	Hours    []HourBucket `json:"hours"`
}

// weekdayIndex converts Go's Sunday-based weekday to the Monday = 0 scheme
// used everywhere in this package.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Series projects readings into per-sensor plotted points for one pollutant.
// No aggregation happens: one point per reading with a present value, ordered
// by time within each sensor. Unknown sensors are included here (and only
// here) so raw data is never hidden by a gap in the sensor table.
func Series(readings []Reading, p Pollutant, sensors *SensorTable) []SensorSeries {
	bySensor := make(map[int][]SeriesPoint)
	for _, r := range readings {
		v := r.Value(p)
		if v == nil {
			continue
		}
		bySensor[r.SensorID] = append(bySensor[r.SensorID], SeriesPoint{Time: r.From, Value: *v})
	}

	ids := make([]int, 0, len(bySensor))
	for id := range bySensor {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]SensorSeries, 0, len(ids))
	for _, id := range ids {
		points := bySensor[id]
		sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

		var name string
		if info, ok := sensors.Resolve(id); ok {
			name = info.Name
		}
		out = append(out, SensorSeries{SensorID: id, Name: name, Points: points})
	}
	return out
}

// Weekly averages readings per (sensor, weekday, hour), collapsing calendar
// weeks. Absent values are excluded from both numerator and denominator, and
// sensors contributing no values for the pollutant are omitted entirely.
// Readings from sensors not in the table are skipped.
func Weekly(readings []Reading, p Pollutant, sensors *SensorTable) []SensorWeekly {
	type key struct {
		sensor int
		slot   int
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)

	for _, r := range readings {
		if _, ok := sensors.Resolve(r.SensorID); !ok {
			continue
		}
		v := r.Value(p)
		if v == nil {
			continue
		}
		k := key{sensor: r.SensorID, slot: WeekIndex(weekdayIndex(r.From), r.From.Hour())}
		sums[k] += *v
		counts[k]++
	}

	buckets := make(map[int][]WeeklyBucket)
	for k, n := range counts {
		day, hour := TimeIndexParts(k.slot)
		buckets[k.sensor] = append(buckets[k.sensor], WeeklyBucket{
			Day:       day,
			Hour:      hour,
			TimeIndex: k.slot,
			Mean:      sums[k] / float64(n),
			Count:     n,
		})
	}

	out := make([]SensorWeekly, 0, len(buckets))
	for _, info := range sensors.All() {
		bs, ok := buckets[info.SensorID]
		if !ok {
			continue
		}
		sort.Slice(bs, func(i, j int) bool { return bs[i].TimeIndex < bs[j].TimeIndex })
		out = append(out, SensorWeekly{SensorID: info.SensorID, Name: info.Name, Buckets: bs})
	}
	return out
}

// SingleDay is the weekly pattern restricted to one weekday (Monday = 0).
func SingleDay(readings []Reading, p Pollutant, day int, sensors *SensorTable) ([]SensorDay, error) {
	if day < 0 || day > 6 {
		return nil, fmt.Errorf("day must be in 0..6, got %d", day)
	}

	filtered := make([]Reading, 0, len(readings))
	for _, r := range readings {
		if weekdayIndex(r.From) == day {
			filtered = append(filtered, r)
		}
	}

	out := make([]SensorDay, 0)
	for _, sw := range Weekly(filtered, p, sensors) {
		hours := make([]HourBucket, 0, len(sw.Buckets))
		for _, b := range sw.Buckets {
			hours = append(hours, HourBucket{Hour: b.Hour, Mean: b.Mean, Count: b.Count})
		}
		out = append(out, SensorDay{SensorID: sw.SensorID, Name: sw.Name, Hours: hours})
	}
	return out, nil
}

package airquality

import (
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }

// mustTime parses "2006-01-02 15:04" timestamps for fixtures.
func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", s, err)
	}
	return ts
}

// 2025-06-30 and 2025-07-07 are consecutive Mondays.
func weeklyFixture(t *testing.T) []Reading {
	return []Reading{
		{SensorID: 14903, From: mustTime(t, "2025-06-30 00:00"), PM25: fp(16)},
		{SensorID: 14903, From: mustTime(t, "2025-07-07 00:00"), PM25: fp(14)},
	}
}

func TestWeeklyAveragesAcrossWeeks(t *testing.T) {
	sensors := DefaultSensorTable()
	weekly := Weekly(weeklyFixture(t), PM25, sensors)

	if len(weekly) != 1 {
		t.Fatalf("expected 1 sensor, got %d", len(weekly))
	}
	sw := weekly[0]
	if sw.SensorID != 14903 {
		t.Fatalf("expected sensor 14903, got %d", sw.SensorID)
	}
	if len(sw.Buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(sw.Buckets))
	}

	b := sw.Buckets[0]
	if b.Day != 0 || b.Hour != 0 || b.TimeIndex != 0 {
		t.Errorf("bucket at day=%d hour=%d idx=%d, want Monday 00:00 idx 0", b.Day, b.Hour, b.TimeIndex)
	}
	if b.Mean != 15.0 {
		t.Errorf("mean = %.2f, want 15.00", b.Mean)
	}
	if b.Count != 2 {
		t.Errorf("count = %d, want 2", b.Count)
	}
}

func TestWeeklySkipsAbsentValues(t *testing.T) {
	sensors := DefaultSensorTable()
	readings := []Reading{
		{SensorID: 14903, From: mustTime(t, "2025-06-30 08:00"), PM25: fp(10)},
		// Absent value at the same slot must not drag the mean toward zero.
		{SensorID: 14903, From: mustTime(t, "2025-07-07 08:00")},
	}

	weekly := Weekly(readings, PM25, sensors)
	if len(weekly) != 1 || len(weekly[0].Buckets) != 1 {
		t.Fatalf("unexpected shape: %+v", weekly)
	}
	b := weekly[0].Buckets[0]
	if b.Mean != 10 || b.Count != 1 {
		t.Errorf("mean=%.2f count=%d, want 10.00 and 1", b.Mean, b.Count)
	}
}

func TestWeeklyOmitsSensorsWithoutValues(t *testing.T) {
	sensors := DefaultSensorTable()
	readings := []Reading{
		{SensorID: 14903, From: mustTime(t, "2025-06-30 08:00"), PM25: fp(10)},
		// Known sensor with only absent values for the pollutant.
		{SensorID: 14519, From: mustTime(t, "2025-06-30 08:00"), PM10: fp(20)},
	}

	weekly := Weekly(readings, PM25, sensors)
	if len(weekly) != 1 || weekly[0].SensorID != 14903 {
		t.Fatalf("expected only sensor 14903, got %+v", weekly)
	}
}

func TestUnknownSensorInSeriesButNotWeekly(t *testing.T) {
	sensors := DefaultSensorTable()
	readings := []Reading{
		{SensorID: 14903, From: mustTime(t, "2025-06-30 08:00"), PM25: fp(10)},
		{SensorID: 99999, From: mustTime(t, "2025-06-30 08:00"), PM25: fp(12)},
	}

	series := Series(readings, PM25, sensors)
	if len(series) != 2 {
		t.Fatalf("series: expected 2 sensors, got %d", len(series))
	}
	var unknown *SensorSeries
	for i := range series {
		if series[i].SensorID == 99999 {
			unknown = &series[i]
		}
	}
	if unknown == nil {
		t.Fatal("series: unknown sensor 99999 missing from raw view")
	}
	if unknown.Name != "" {
		t.Errorf("series: unknown sensor has name %q, want empty", unknown.Name)
	}

	weekly := Weekly(readings, PM25, sensors)
	for _, sw := range weekly {
		if sw.SensorID == 99999 {
			t.Error("weekly: unknown sensor 99999 must be excluded")
		}
	}
}

func TestSeriesOrderedByTime(t *testing.T) {
	sensors := DefaultSensorTable()
	readings := []Reading{
		{SensorID: 14903, From: mustTime(t, "2025-07-02 10:00"), PM25: fp(3)},
		{SensorID: 14903, From: mustTime(t, "2025-06-30 10:00"), PM25: fp(1)},
		{SensorID: 14903, From: mustTime(t, "2025-07-01 10:00"), PM25: fp(2)},
	}

	series := Series(readings, PM25, sensors)
	if len(series) != 1 {
		t.Fatalf("expected 1 sensor, got %d", len(series))
	}
	for i, p := range series[0].Points {
		if p.Value != float64(i+1) {
			t.Fatalf("points out of order: %+v", series[0].Points)
		}
	}
}

func TestSingleDayMatchesWeekly(t *testing.T) {
	sensors := DefaultSensorTable()

	// A spread of readings across several weekdays and hours, two calendar
	// weeks deep, with some absent values mixed in.
	var readings []Reading
	base := mustTime(t, "2025-06-30 00:00")
	for week := 0; week < 2; week++ {
		for day := 0; day < 7; day++ {
			for hour := 0; hour < 24; hour += 5 {
				ts := base.AddDate(0, 0, week*7+day).Add(time.Duration(hour) * time.Hour)
				r := Reading{SensorID: 14903, From: ts}
				if (day+hour+week)%3 != 0 {
					r.PM25 = fp(float64(day*10 + hour))
				}
				readings = append(readings, r)
			}
		}
	}

	weeklyCount := 0
	for _, sw := range Weekly(readings, PM25, sensors) {
		for _, b := range sw.Buckets {
			weeklyCount += b.Count
		}
	}

	dayCount := 0
	for day := 0; day < 7; day++ {
		days, err := SingleDay(readings, PM25, day, sensors)
		if err != nil {
			t.Fatalf("SingleDay(%d): %v", day, err)
		}
		for _, sd := range days {
			for _, h := range sd.Hours {
				dayCount += h.Count
			}
		}
	}

	if weeklyCount != dayCount {
		t.Errorf("weekly observation count %d != sum of single-day counts %d", weeklyCount, dayCount)
	}
}

func TestSingleDayRejectsBadDay(t *testing.T) {
	sensors := DefaultSensorTable()
	if _, err := SingleDay(nil, PM25, 7, sensors); err == nil {
		t.Error("expected error for day 7")
	}
	if _, err := SingleDay(nil, PM25, -1, sensors); err == nil {
		t.Error("expected error for day -1")
	}
}

func TestWeekdayIndexMondayBased(t *testing.T) {
	// 2025-06-30 is a Monday, 2025-07-06 a Sunday.
	if got := weekdayIndex(mustTime(t, "2025-06-30 12:00")); got != 0 {
		t.Errorf("Monday index = %d, want 0", got)
	}
	if got := weekdayIndex(mustTime(t, "2025-07-06 12:00")); got != 6 {
		t.Errorf("Sunday index = %d, want 6", got)
	}
}

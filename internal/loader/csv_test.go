package loader

import (
	"strings"
	"testing"
	"time"
)

const sampleExport = `Sensor id,From,Till,PM1 [ug/m3],PM2.5 [ug/m3],PM10 [ug/m3],Temperature [°C],Humidity [%]
14903,2025-06-30 00:00,2025-06-30 01:00,5.2,8.1,12.4,18.5,62
14519,2025-06-30 00:00,2025-06-30 01:00,,9.3,,19.1,
14548,2025-06-30 00:00,2025-06-30 01:00,4.0,7.7,11.0,18.9,60
notanumber,2025-06-30 00:00,2025-06-30 01:00,1,2,3,4,5
`

func TestReadMapsColumnsAndAbsentValues(t *testing.T) {
	readings, err := Read(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	// The malformed sensor id row is skipped, not fatal.
	if len(readings) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(readings))
	}

	first := readings[0]
	if first.SensorID != 14903 {
		t.Errorf("sensor = %d, want 14903", first.SensorID)
	}
	want := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if !first.From.Equal(want) {
		t.Errorf("from = %v, want %v", first.From, want)
	}
	if first.Till.IsZero() {
		t.Error("till not parsed")
	}
	if first.PM1 == nil || *first.PM1 != 5.2 {
		t.Errorf("pm1 = %v, want 5.2", first.PM1)
	}
	if first.PM25 == nil || *first.PM25 != 8.1 {
		t.Errorf("pm2.5 = %v, want 8.1", first.PM25)
	}
	if first.PM10 == nil || *first.PM10 != 12.4 {
		t.Errorf("pm10 = %v, want 12.4", first.PM10)
	}
	if first.Temperature == nil || *first.Temperature != 18.5 {
		t.Errorf("temperature = %v, want 18.5", first.Temperature)
	}

	// Empty cells stay absent, never zero.
	second := readings[1]
	if second.PM1 != nil {
		t.Errorf("pm1 = %v, want absent", *second.PM1)
	}
	if second.PM10 != nil {
		t.Errorf("pm10 = %v, want absent", *second.PM10)
	}
	if second.Humidity != nil {
		t.Errorf("humidity = %v, want absent", *second.Humidity)
	}
	if second.PM25 == nil || *second.PM25 != 9.3 {
		t.Errorf("pm2.5 = %v, want 9.3", second.PM25)
	}
}

func TestReadRejectsMissingRequiredColumns(t *testing.T) {
	_, err := Read(strings.NewReader("PM1,PM2.5,PM10\n1,2,3\n"))
	if err == nil {
		t.Fatal("expected error for export without sensor/from columns")
	}
}

func TestReadRejectsEmptyExport(t *testing.T) {
	_, err := Read(strings.NewReader("Sensor id,From\n"))
	if err == nil {
		t.Fatal("expected error for export with no rows")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("does/not/exist.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestColumnForDisambiguatesPMHeaders(t *testing.T) {
	cases := map[string]column{
		"PM1 [ug/m3]":      colPM1,
		"PM2.5 [ug/m3]":    colPM25,
		"PM10 [ug/m3]":     colPM10,
		"pm25":             colPM25,
		"Sensor id":        colSensor,
		"From":             colFrom,
		"Till":             colTill,
		"Temperature [°C]": colTemperature,
		"Humidity [%]":     colHumidity,
		"Pressure [hPa]":   colIgnore,
	}
	for header, want := range cases {
		if got := columnFor(header); got != want {
			t.Errorf("columnFor(%q) = %d, want %d", header, got, want)
		}
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, s := range []string{
		"2025-06-30T08:00:00Z",
		"2025-06-30 08:00:00",
		"2025-06-30 08:00",
	} {
		ts, err := parseTimestamp(s)
		if err != nil {
			t.Errorf("parseTimestamp(%q): %v", s, err)
			continue
		}
		if ts.Hour() != 8 {
			t.Errorf("parseTimestamp(%q) hour = %d", s, ts.Hour())
		}
	}

	if _, err := parseTimestamp("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

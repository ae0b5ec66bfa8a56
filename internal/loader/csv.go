// Package loader reads the Airly measurement export into Reading values.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/broadway-air/airquality-dashboard/internal/airquality"
	"github.com/broadway-air/airquality-dashboard/internal/common"
)

type column int

const (
	colIgnore column = iota
	colSensor
	colFrom
	colTill
	colPM1
	colPM25
	colPM10
	colTemperature
	colHumidity
)

// columnFor maps an export header onto a Reading field. Matching is loose so
// unit suffixes like "PM2.5 [ug/m3]" or "Temperature [°C]" don't matter.
// PM2.5 and PM10 are checked before PM1 because their headers contain "pm1".
func columnFor(header string) column {
	h := strings.ToLower(strings.TrimSpace(header))
	switch {
	case common.HasAny(h, "pm2.5", "pm2_5", "pm25"):
		return colPM25
	case common.HasAny(h, "pm10"):
		return colPM10
	case common.HasAny(h, "pm1"):
		return colPM1
	case common.HasAny(h, "sensor"):
		return colSensor
	case h == "from" || strings.HasPrefix(h, "from"):
		return colFrom
	case h == "till" || strings.HasPrefix(h, "till") || h == "to":
		return colTill
	case common.HasAny(h, "temp"):
		return colTemperature
	case common.HasAny(h, "humid"):
		return colHumidity
	}
	return colIgnore
}

// timestampLayouts are tried in order when parsing interval boundaries.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02.01.2006 15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseOptionalFloat returns nil for empty cells; absence is not zero.
func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadFile loads an export file. Any failure to open or parse the table is
// fatal to startup; there is no retry.
func ReadFile(path string) ([]airquality.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	readings, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read data file %s: %w", path, err)
	}
	return readings, nil
}

// Read parses the export table. The first row is the header; rows that fail
// to parse are skipped and counted rather than aborting the load.
func Read(r io.Reader) ([]airquality.Reading, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]column, len(header))
	seen := make(map[column]bool)
	for i, h := range header {
		cols[i] = columnFor(h)
		seen[cols[i]] = true
	}
	if !seen[colSensor] || !seen[colFrom] {
		return nil, errors.New("export is missing the sensor id or interval start column")
	}

	var readings []airquality.Reading
	skipped := 0

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		reading, err := parseRow(cols, record)
		if err != nil {
			skipped++
			continue
		}
		readings = append(readings, reading)
	}

	if skipped > 0 {
		log.Printf("loader: skipped %d malformed rows", skipped)
	}
	if len(readings) == 0 {
		return nil, errors.New("export contains no parseable rows")
	}
	return readings, nil
}

func parseRow(cols []column, record []string) (airquality.Reading, error) {
	var r airquality.Reading
	var haveSensor, haveFrom bool

	for i, cell := range record {
		if i >= len(cols) {
			break
		}
		switch cols[i] {
		case colSensor:
			id, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return r, fmt.Errorf("sensor id: %w", err)
			}
			r.SensorID = id
			haveSensor = true
		case colFrom:
			ts, err := parseTimestamp(cell)
			if err != nil {
				return r, err
			}
			r.From = ts
			haveFrom = true
		case colTill:
			if ts, err := parseTimestamp(cell); err == nil {
				r.Till = ts
			}
		case colPM1:
			v, err := parseOptionalFloat(cell)
			if err != nil {
				return r, err
			}
			r.PM1 = v
		case colPM25:
			v, err := parseOptionalFloat(cell)
			if err != nil {
				return r, err
			}
			r.PM25 = v
		case colPM10:
			v, err := parseOptionalFloat(cell)
			if err != nil {
				return r, err
			}
			r.PM10 = v
		case colTemperature:
			v, err := parseOptionalFloat(cell)
			if err != nil {
				return r, err
			}
			r.Temperature = v
		case colHumidity:
			v, err := parseOptionalFloat(cell)
			if err != nil {
				return r, err
			}
			r.Humidity = v
		}
	}

	if !haveSensor || !haveFrom {
		return r, errors.New("row is missing sensor id or interval start")
	}
	return r, nil
}

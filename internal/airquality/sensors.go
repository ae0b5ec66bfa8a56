package airquality

import (
	"encoding/json"
	"fmt"
	"os"
)

// SensorInfo is one entry of the hand-maintained sensor table: a display name
// and the sensor's position on the floor-plan map as percentages of the image
// width and height.
type SensorInfo struct {
	SensorID int     `json:"sensorId"`
	Name     string  `json:"name"`
	MapX     float64 `json:"mapX"`
	MapY     float64 `json:"mapY"`
}

// SensorTable resolves sensor ids to display metadata. Readings from ids not
// in the table stay in the raw time series but are excluded from every view
// that needs a name or a map position.
type SensorTable struct {
	byID  map[int]SensorInfo
	order []int
}

// NewSensorTable builds a table preserving the given display order.
func NewSensorTable(infos []SensorInfo) *SensorTable {
	t := &SensorTable{byID: make(map[int]SensorInfo, len(infos))}
	for _, info := range infos {
		if _, exists := t.byID[info.SensorID]; exists {
			continue
		}
		t.byID[info.SensorID] = info
		t.order = append(t.order, info.SensorID)
	}
	return t
}

// DefaultSensorTable returns the four Broadway Market sensors.
func DefaultSensorTable() *SensorTable {
	return NewSensorTable([]SensorInfo{
		{SensorID: 14903, Name: "BM1 - Nr Leather and Lace shop, Longmead Rd entrance", MapX: 88, MapY: 21},
		{SensorID: 14519, Name: "BM2 - Middle corridor - Fishmonger end of corridor", MapX: 36, MapY: 58},
		{SensorID: 14548, Name: "BM3 - Tooting High Street/Gems Broadway entrance nr Craft Tooting", MapX: 19, MapY: 33},
		{SensorID: 14868, Name: "BM4 - Tooting High Street/Aldi/new flats Entrance nr Chinese Food", MapX: 20, MapY: 60},
	})
}

// LoadSensorTable reads a sensor table from a JSON file holding an array of
// SensorInfo objects.
func LoadSensorTable(path string) (*SensorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sensor table: %w", err)
	}

	var infos []SensorInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		return nil, fmt.Errorf("parse sensor table %s: %w", path, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("sensor table %s is empty", path)
	}

	return NewSensorTable(infos), nil
}

// Resolve looks up display metadata for a sensor id.
func (t *SensorTable) Resolve(sensorID int) (SensorInfo, bool) {
	info, ok := t.byID[sensorID]
	return info, ok
}

// All returns the table entries in display order.
func (t *SensorTable) All() []SensorInfo {
	out := make([]SensorInfo, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

package airquality

import (
	"encoding/json"
	"math"
)

// Band is one step of a pollutant's quality scale: every value up to and
// including UpperBound falls into this band. The final band of a scale has
// UpperBound = +Inf so the scale covers the full range.
type Band struct {
	UpperBound float64
	Color      string
	Label      string
}

// MarshalJSON renders the open-ended final band with a null upper bound,
// since JSON has no representation for +Inf.
func (b Band) MarshalJSON() ([]byte, error) {
	out := struct {
		UpperBound *float64 `json:"upperBound"`
		Color      string   `json:"color"`
		Label      string   `json:"label"`
	}{Color: b.Color, Label: b.Label}
	if !math.IsInf(b.UpperBound, 1) {
		ub := b.UpperBound
		out.UpperBound = &ub
	}
	return json.Marshal(out)
}

// BandTable maps each pollutant to its ordered quality scale
// (ascending upper bounds).
type BandTable map[Pollutant][]Band

// Classify returns the first band whose upper bound is >= value.
// Boundary values resolve to the lower band. Pollutants without their own
// scale fall back to the PM2.5 scale.
func (t BandTable) Classify(p Pollutant, value float64) Band {
	scale, ok := t[p]
	if !ok {
		scale = t[PM25]
	}
	for _, b := range scale {
		if value <= b.UpperBound {
			return b
		}
	}
	return scale[len(scale)-1]
}

// Scale returns the ordered band list for a pollutant, falling back to the
// PM2.5 scale for pollutants without their own.
func (t BandTable) Scale(p Pollutant) []Band {
	if scale, ok := t[p]; ok {
		return scale
	}
	return t[PM25]
}

// DefaultBands returns the quality scales used for display. The PM1 scale
// reuses the PM2.5 one: no PM1-specific guideline bands exist, and keeping it
// as table data means a dedicated scale is a data change later.
func DefaultBands() BandTable {
	pm25 := []Band{
		{UpperBound: 11.5, Color: "#2E8B57", Label: "SeaGreen"},
		{UpperBound: 23.5, Color: "#3CB371", Label: "MediumSeaGreen"},
		{UpperBound: 35.5, Color: "#9ACD32", Label: "YellowGreen"},
		{UpperBound: 41.5, Color: "#FFFF00", Label: "Yellow"},
		{UpperBound: 47.5, Color: "#FFA500", Label: "Orange"},
		{UpperBound: 53.5, Color: "#FF8C00", Label: "DarkOrange"},
		{UpperBound: 58.5, Color: "#FF4500", Label: "OrangeRed"},
		{UpperBound: 64.5, Color: "#DC143C", Label: "Crimson"},
		{UpperBound: 70.5, Color: "#B22222", Label: "FireBrick"},
		{UpperBound: 120, Color: "#800080", Label: "Purple"},
		{UpperBound: math.Inf(1), Color: "#310154", Label: "Deep Violet"},
	}

	pm10 := []Band{
		{UpperBound: 16.5, Color: "#2E8B57", Label: "SeaGreen"},
		{UpperBound: 33.5, Color: "#3CB371", Label: "MediumSeaGreen"},
		{UpperBound: 50.5, Color: "#9ACD32", Label: "YellowGreen"},
		{UpperBound: 58.5, Color: "#FFFF00", Label: "Yellow"},
		{UpperBound: 66.5, Color: "#FFA500", Label: "Orange"},
		{UpperBound: 75.5, Color: "#FF8C00", Label: "DarkOrange"},
		{UpperBound: 83.5, Color: "#FF4500", Label: "OrangeRed"},
		{UpperBound: 91.5, Color: "#DC143C", Label: "Crimson"},
		{UpperBound: 100.5, Color: "#B22222", Label: "FireBrick"},
		{UpperBound: 180, Color: "#800080", Label: "Purple"},
		{UpperBound: math.Inf(1), Color: "#310154", Label: "Deep Violet"},
	}

	return BandTable{
		PM25: pm25,
		PM10: pm10,
		PM1:  pm25,
	}
}

package airquality

import (
	"sync"
)

// ReadingStore is the contract the in-memory store must satisfy. Version
// changes whenever the dataset is replaced, which invalidates memoized views.
type ReadingStore interface {
	All() ([]Reading, error)
	Version() uint64
}

// memoKey identifies one memoized aggregate view.
type memoKey struct {
	version   uint64
	mode      string
	pollutant Pollutant
	day       int
}

// Keeps the memo map from accumulating entries across dataset refreshes.
const maxMemoEntries = 128

// Service binds the reading store, the sensor table, and the display
// reference tables (bands, marker sizing) behind one query surface.
// Aggregate views are recomputed from the immutable reading slice on demand
// and memoized per (mode, pollutant, day, dataset version).
type Service struct {
	store   ReadingStore
	sensors *SensorTable
	bands   BandTable
	sizes   SizeScale

	mu   sync.Mutex
	memo map[memoKey]any
}

// NewService creates a Service over a store and reference tables.
func NewService(store ReadingStore, sensors *SensorTable, bands BandTable, sizes SizeScale) *Service {
	return &Service{
		store:   store,
		sensors: sensors,
		bands:   bands,
		sizes:   sizes,
		memo:    make(map[memoKey]any),
	}
}

// Sensors returns the sensor table in display order.
func (s *Service) Sensors() []SensorInfo {
	return s.sensors.All()
}

// Legend returns the ordered quality scale for a pollutant.
func (s *Service) Legend(p Pollutant) []Band {
	return s.bands.Scale(p)
}

// Classify decorates a single value with its quality band.
func (s *Service) Classify(p Pollutant, value float64) Band {
	return s.bands.Classify(p, value)
}

// Series returns the raw per-sensor time series for a pollutant.
func (s *Service) Series(p Pollutant) ([]SensorSeries, error) {
	v, err := s.cached(memoKey{mode: "series", pollutant: p, day: -1}, func(rs []Reading) any {
		return Series(rs, p, s.sensors)
	})
	if err != nil {
		return nil, err
	}
	return v.([]SensorSeries), nil
}

// Weekly returns per-sensor weekday/hour averages for a pollutant.
func (s *Service) Weekly(p Pollutant) ([]SensorWeekly, error) {
	v, err := s.cached(memoKey{mode: "weekly", pollutant: p, day: -1}, func(rs []Reading) any {
		return Weekly(rs, p, s.sensors)
	})
	if err != nil {
		return nil, err
	}
	return v.([]SensorWeekly), nil
}

// SingleDay returns per-sensor hourly averages for one weekday (Monday = 0).
func (s *Service) SingleDay(p Pollutant, day int) ([]SensorDay, error) {
	if day < 0 || day > 6 {
		// Validate before touching the cache so bad days never occupy a slot.
		return SingleDay(nil, p, day, s.sensors)
	}
	v, err := s.cached(memoKey{mode: "day", pollutant: p, day: day}, func(rs []Reading) any {
		out, _ := SingleDay(rs, p, day, s.sensors)
		return out
	})
	if err != nil {
		return nil, err
	}
	return v.([]SensorDay), nil
}

// Summarize returns per-sensor descriptive statistics for a pollutant.
func (s *Service) Summarize(p Pollutant) ([]SummaryStat, error) {
	v, err := s.cached(memoKey{mode: "summary", pollutant: p, day: -1}, func(rs []Reading) any {
		return Summarize(rs, p, s.sensors)
	})
	if err != nil {
		return nil, err
	}
	return v.([]SummaryStat), nil
}

// Overview returns the pollutant-independent dataset overview.
func (s *Service) Overview() (Overview, error) {
	v, err := s.cached(memoKey{mode: "overview", day: -1}, func(rs []Reading) any {
		return BuildOverview(rs, s.sensors)
	})
	if err != nil {
		return Overview{}, err
	}
	return v.(Overview), nil
}

// MapMarker is one sensor's decorated position in a map frame.
type MapMarker struct {
	SensorID int     `json:"sensorId"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
	Quality  string  `json:"quality"`
	Size     float64 `json:"size"`
}

// MapFrame is the map view at one week-clock slot: every sensor with a weekly
// bucket at that slot, colored by quality band and sized by concentration.
type MapFrame struct {
	TimeIndex int         `json:"timeIndex"`
	Day       int         `json:"day"`
	Hour      int         `json:"hour"`
	Label     string      `json:"label"`
	Markers   []MapMarker `json:"markers"`
}

// MapFrame builds the map view for a pollutant at a week-clock slot. The
// index is clamped, never rejected. Sensors without observations at the slot
// are left off the frame.
func (s *Service) MapFrame(p Pollutant, timeIdx int) (MapFrame, error) {
	idx := ClampTimeIndex(timeIdx)

	weekly, err := s.Weekly(p)
	if err != nil {
		return MapFrame{}, err
	}

	day, hour := TimeIndexParts(idx)
	frame := MapFrame{
		TimeIndex: idx,
		Day:       day,
		Hour:      hour,
		Label:     TimeIndexLabel(idx),
		Markers:   []MapMarker{},
	}

	for _, sw := range weekly {
		for _, b := range sw.Buckets {
			if b.TimeIndex != idx {
				continue
			}
			info, ok := s.sensors.Resolve(sw.SensorID)
			if !ok {
				break
			}
			band := s.bands.Classify(p, b.Mean)
			frame.Markers = append(frame.Markers, MapMarker{
				SensorID: sw.SensorID,
				Name:     info.Name,
				X:        info.MapX,
				Y:        info.MapY,
				Value:    b.Mean,
				Color:    band.Color,
				Quality:  band.Label,
				Size:     s.sizes.MarkerSize(p, b.Mean),
			})
			break
		}
	}

	return frame, nil
}

// cached returns the memoized view for key, computing and storing it on miss.
func (s *Service) cached(key memoKey, build func([]Reading) any) (any, error) {
	readings, err := s.store.All()
	if err != nil {
		return nil, err
	}
	key.version = s.store.Version()

	s.mu.Lock()
	if v, ok := s.memo[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v := build(readings)

	s.mu.Lock()
	if len(s.memo) >= maxMemoEntries {
		s.memo = make(map[memoKey]any)
	}
	s.memo[key] = v
	s.mu.Unlock()

	return v, nil
}

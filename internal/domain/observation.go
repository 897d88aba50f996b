package domain

import "sort"

// Temp is one temperature reading from a GHCN daily row. Stations frequently
// leave a field empty when no value was reported; Present distinguishes that
// from a genuine reading. Raw keeps the exact input text so reports emit the
// value byte-for-byte as it appeared in the source file.
type Temp struct {
	Raw     string
	Value   float64
	Present bool
}

// Observation is a single station-day of climate data, immutable once parsed.
type Observation struct {
	Year  int
	Month int
	Day   int

	StationID   string
	StationName string

	TMax Temp
	TMin Temp
	TAvg Temp
}

// Station collects all observations for one station id in input order.
// Name holds the first non-empty station name seen for that id.
type Station struct {
	ID           string
	Name         string
	Observations []Observation
}

// Years returns the distinct calendar years present in the station's
// observations, ascending.
func (s *Station) Years() []int {
	seen := make(map[int]struct{}, len(s.Observations))
	for _, obs := range s.Observations {
		seen[obs.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Corpus is the set of stations discovered in one input file, keyed by
// station id. Iteration order is first-appearance order, which fixes the
// order output files are emitted in.
type Corpus struct {
	stations []*Station
	byID     map[string]*Station
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{byID: make(map[string]*Station)}
}

// Add appends an observation to its station, creating the station on first
// sight. The station name is adopted from the first observation that carries
// a non-empty one and never overwritten afterwards.
func (c *Corpus) Add(obs Observation) {
	st, found := c.byID[obs.StationID]
	if !found {
		st = &Station{ID: obs.StationID}
		c.byID[obs.StationID] = st
		c.stations = append(c.stations, st)
	}
	if st.Name == "" && obs.StationName != "" {
		st.Name = obs.StationName
	}
	st.Observations = append(st.Observations, obs)
}

// Station returns the station with the given id, or nil.
func (c *Corpus) Station(id string) *Station {
	return c.byID[id]
}

// Stations returns all stations in first-appearance order.
func (c *Corpus) Stations() []*Station {
	return c.stations
}

// Len returns the number of distinct stations.
func (c *Corpus) Len() int {
	return len(c.stations)
}

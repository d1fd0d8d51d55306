package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxSeriesYear is the largest year index accepted when decoding a series.
const MaxSeriesYear = 300

// YearSeries is a year-indexed numeric series. Index 0 is the acquisition /
// pre-opening year. It serializes as an ordered object {"y0": .., "y1": ..}.
type YearSeries []float64

// NewYearSeries allocates a zero series covering y0..yHorizon.
func NewYearSeries(horizon int) YearSeries {
	if horizon < 0 {
		horizon = 0
	}
	return make(YearSeries, horizon+1)
}

// YearKey formats a year index as a series key ("y3").
func YearKey(year int) string {
	return "y" + strconv.Itoa(year)
}

// Get returns the value at year, or 0 outside the series.
func (s YearSeries) Get(year int) float64 {
	if year < 0 || year >= len(s) {
		return 0
	}
	return s[year]
}

// Sum adds years 0..through inclusive. A negative through sums the whole series.
func (s YearSeries) Sum(through int) float64 {
	if through < 0 || through >= len(s) {
		through = len(s) - 1
	}
	total := 0.0
	for i := 0; i <= through; i++ {
		total += s[i]
	}
	return total
}

// Truncate returns y0..yThrough as a new slice. Out-of-range values clamp to the series.
func (s YearSeries) Truncate(through int) YearSeries {
	if through < 0 {
		return YearSeries{}
	}
	if through >= len(s) {
		through = len(s) - 1
	}
	out := make(YearSeries, through+1)
	copy(out, s[:through+1])
	return out
}

// MarshalJSON keeps the year keys in chronological order.
func (s YearSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:", YearKey(i))
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the keyed object form; missing years are zero.
func (s *YearSeries) UnmarshalJSON(data []byte) error {
	raw := map[string]float64{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("year series: %w", err)
	}
	maxYear := -1
	parsed := make(map[int]float64, len(raw))
	for k, v := range raw {
		year, err := strconv.Atoi(strings.TrimPrefix(k, "y"))
		if err != nil || !strings.HasPrefix(k, "y") || year < 0 {
			return fmt.Errorf("year series: invalid key %q", k)
		}
		if year > MaxSeriesYear {
			return fmt.Errorf("year series: key %q beyond y%d", k, MaxSeriesYear)
		}
		parsed[year] = v
		if year > maxYear {
			maxYear = year
		}
	}
	out := make(YearSeries, maxYear+1)
	for year, v := range parsed {
		out[year] = v
	}
	*s = out
	return nil
}

// Package calendar implements the game's time-stamp convention: a year
// counted down towards 0 BC, a day within that year and the phase of the day
// in radians.
package calendar

import (
	"fmt"
	"math"
)

const (
	EpochYearBC  = 500
	DaysPerYear  = 365
	DayLength    = 2 * math.Pi
	PhaseEpsilon = 1e-6
)

type Stamp struct {
	YearBC int
	Day    int
	Phase  float64 // radians in [0, 2π)
}

// Total returns the stamp as radians elapsed since the epoch.
func (s Stamp) Total() float64 {
	return float64(EpochYearBC-s.YearBC)*DaysPerYear*DayLength + float64(s.Day)*DayLength + s.Phase
}

// FromTotal is the inverse of Total for non-negative totals.
func FromTotal(total float64) Stamp {
	days := math.Floor(total / DayLength)
	phase := total - days*DayLength
	years := int(days) / DaysPerYear
	return Stamp{
		YearBC: EpochYearBC - years,
		Day:    int(days) % DaysPerYear,
		Phase:  phase,
	}
}

// Equal compares year and day exactly and the phase within PhaseEpsilon.
func (s Stamp) Equal(o Stamp) bool {
	return s.YearBC == o.YearBC && s.Day == o.Day && math.Abs(s.Phase-o.Phase) < PhaseEpsilon
}

func (s Stamp) Before(o Stamp) bool {
	return !s.Equal(o) && s.Total() < o.Total()
}

// Advance moves the stamp forward by d radians, rolling days and years.
func (s Stamp) Advance(d float64) Stamp {
	s.Phase += d
	for s.Phase >= DayLength {
		s.Phase -= DayLength
		s.Day++
		if s.Day >= DaysPerYear {
			s.Day = 0
			s.YearBC--
		}
	}
	return s
}

func (s Stamp) String() string {
	return fmt.Sprintf("%d BC day %d %.3frad", s.YearBC, s.Day, s.Phase)
}

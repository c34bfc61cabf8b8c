package calendar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Stamp{YearBC: 500}.Total())
	s := Stamp{YearBC: 499, Day: 2, Phase: 1}
	assert.InDelta(t, 365*2*math.Pi+2*2*math.Pi+1, s.Total(), 1e-9)
}

func TestFromTotalRoundTrip(t *testing.T) {
	s := Stamp{YearBC: 480, Day: 17, Phase: 2.5}
	assert.True(t, s.Equal(FromTotal(s.Total())))
}

func TestEqualTolerance(t *testing.T) {
	a := Stamp{YearBC: 400, Day: 3, Phase: 1}
	assert.True(t, a.Equal(Stamp{YearBC: 400, Day: 3, Phase: 1 + 1e-9}))
	assert.False(t, a.Equal(Stamp{YearBC: 400, Day: 3, Phase: 1.1}))
	assert.False(t, a.Equal(Stamp{YearBC: 400, Day: 4, Phase: 1}))
	assert.True(t, a.Before(Stamp{YearBC: 399}))
	assert.False(t, a.Before(a))
}

func TestAdvanceRollsDaysAndYears(t *testing.T) {
	s := Stamp{YearBC: 500, Day: 364, Phase: DayLength - 0.5}.Advance(1)
	assert.Equal(t, 499, s.YearBC)
	assert.Equal(t, 0, s.Day)
	assert.InDelta(t, 0.5, s.Phase, 1e-9)
}

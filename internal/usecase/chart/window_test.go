package chart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t time.Time, value int64) Point {
	return Point{Date: t, Value: decimal.NewFromInt(value)}
}

func TestWindowed_MaxReturnsSeriesUnchanged(t *testing.T) {
	today := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	series := []Point{
		point(today.AddDate(-2, 0, 0), 100),
		point(today.AddDate(0, -1, 0), 200),
	}

	assert.Equal(t, series, Windowed(series, PeriodMax, today))
}

func TestWindowed_ClipsToCutoff(t *testing.T) {
	today := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	series := []Point{
		point(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 100),
		point(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), 200),
		point(time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC), 300),
	}

	windowed := Windowed(series, PeriodOneMonth, today)

	// June 15 cutoff: the January point drops, a synthetic lead carries its value
	require.Len(t, windowed, 3)
	assert.True(t, windowed[0].Date.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, decimal.NewFromInt(100).Equal(windowed[0].Value))
	assert.True(t, decimal.NewFromInt(200).Equal(windowed[1].Value))
	assert.True(t, decimal.NewFromInt(300).Equal(windowed[2].Value))
}

func TestWindowed_JuneOnlyHistoryGetsSyntheticLead(t *testing.T) {
	// Observations only in June at value 100; a 1-month window requested on
	// July 15 starts with a synthetic point dated at the cutoff valued 100
	today := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	series := []Point{
		point(time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC), 100),
	}

	windowed := Windowed(series, PeriodOneMonth, today)

	require.Len(t, windowed, 2)
	assert.True(t, windowed[0].Date.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, decimal.NewFromInt(100).Equal(windowed[0].Value))
	assert.True(t, decimal.NewFromInt(100).Equal(windowed[1].Value))
}

func TestWindowed_GapFillAtWindowStart(t *testing.T) {
	today := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	series := []Point{
		point(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), 100),
		point(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), 100),
	}

	windowed := Windowed(series, PeriodOneMonth, today)

	// Cutoff June 15: the July point survives, and the gap back to the
	// cutoff is filled with the last value known before it
	require.Len(t, windowed, 2)
	assert.True(t, windowed[0].Date.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, decimal.NewFromInt(100).Equal(windowed[0].Value))
}

func TestWindowed_GapFillWithoutHistoryUsesFirstValue(t *testing.T) {
	today := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	series := []Point{
		point(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), 250),
	}

	windowed := Windowed(series, PeriodOneMonth, today)

	require.Len(t, windowed, 2)
	assert.True(t, windowed[0].Date.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, decimal.NewFromInt(250).Equal(windowed[0].Value))
}

func TestWindowed_EmptyWindow(t *testing.T) {
	today := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	series := []Point{
		point(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), 100),
	}

	assert.Empty(t, Windowed(series, PeriodOneWeek, today))
}

func datesSpanning(n int) []time.Time {
	dates := make([]time.Time, n)
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func TestThin_BucketTable(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantCount int
	}{
		{"six or fewer kept intact", 6, 6},
		{"seven halves", 7, 4},        // indices 0,2,4,6
		{"thirteen thirds", 13, 5},    // 0,3,6,9,12
		{"twenty five sixths", 25, 5}, // 0,6,12,18,24
		{"seventy twelfths", 70, 6},   // 0,12,24,36,48,60
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := datesSpanning(tt.count)
			thinned := Thin(dates)
			assert.Len(t, thinned, tt.wantCount)

			// Always keeps the first date
			if tt.count > 0 {
				assert.True(t, thinned[0].Equal(dates[0]))
			}
		})
	}
}

func TestThin_SeventyDatesSelectsEveryTwelfth(t *testing.T) {
	dates := datesSpanning(70)
	thinned := Thin(dates)

	require.Len(t, thinned, 6)
	for i, date := range thinned {
		assert.True(t, date.Equal(dates[i*12]), "thinned[%d] should be dates[%d]", i, i*12)
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("1M")
	require.NoError(t, err)
	assert.Equal(t, PeriodOneMonth, p)

	p, err = ParsePeriod("max")
	require.NoError(t, err)
	assert.Equal(t, PeriodMax, p)

	_, err = ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestPeriodDays(t *testing.T) {
	days, ok := PeriodOneYear.Days()
	assert.True(t, ok)
	assert.Equal(t, 365, days)

	_, ok = PeriodMax.Days()
	assert.False(t, ok)
}

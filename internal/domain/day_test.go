package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf_TruncatesToUTCDay(t *testing.T) {
	ts := time.Date(2026, time.March, 14, 23, 45, 12, 0, time.UTC)
	day := DayOf(ts)

	assert.Equal(t, "2026-03-14", day.String())
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), day.Time())
}

func TestDay_EndIsExclusiveUpperBound(t *testing.T) {
	day := NewDay(2026, time.March, 14)

	// An observation at 23:59:59 on the day counts; midnight of the next day does not
	lastSecond := time.Date(2026, time.March, 14, 23, 59, 59, 0, time.UTC)
	assert.True(t, lastSecond.Before(day.End()))
	assert.False(t, day.End().Before(day.End()))
	assert.Equal(t, NewDay(2026, time.March, 15).Time(), day.End())
}

func TestDay_AddNormalizes(t *testing.T) {
	endOfJan := NewDay(2026, time.January, 31)
	assert.Equal(t, "2026-02-01", endOfJan.Add(1).String())
	assert.Equal(t, "2026-01-01", endOfJan.Add(-30).String())
}

func TestDay_Ordering(t *testing.T) {
	a := NewDay(2026, time.June, 1)
	b := NewDay(2026, time.June, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))

	// Value semantics: equal days compare equal
	assert.Equal(t, a, NewDay(2026, time.June, 1))
}

func TestDay_JSONRoundTrip(t *testing.T) {
	day := NewDay(2026, time.July, 4)

	data, err := json.Marshal(day)
	require.NoError(t, err)
	assert.Equal(t, `"2026-07-04"`, string(data))

	var decoded Day
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, day, decoded)
}

func TestParseDay_RejectsGarbage(t *testing.T) {
	_, err := ParseDay("14/03/2026")
	assert.Error(t, err)
}

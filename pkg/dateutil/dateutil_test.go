package dateutil_test

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"go-jobtracker-backend/pkg/dateutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zones = []*time.Location{
	time.UTC,
	time.FixedZone("UTC-10", -10*3600),
	time.FixedZone("UTC-8", -8*3600),
	time.FixedZone("UTC-3:30", -(3*3600 + 1800)),
	time.FixedZone("UTC+5:30", 5*3600+1800),
	time.FixedZone("UTC+14", 14*3600),
}

func namedZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestNormalizeDateRoundTrip(t *testing.T) {
	dates := []string{"2025-03-01", "2024-02-29", "2025-01-01", "2025-12-31", "1999-07-15"}

	all := append([]*time.Location{}, zones...)
	for _, name := range []string{"America/New_York", "America/Sao_Paulo", "America/Santiago", "America/Havana", "Asia/Beirut", "Australia/Lord_Howe"} {
		all = append(all, namedZone(t, name))
	}

	for _, loc := range all {
		for _, d := range dates {
			instant, err := dateutil.NormalizeDate(d, loc)
			require.NoError(t, err)
			assert.Equal(t, d, dateutil.CalendarDate(instant, loc), "zone %s", loc)
		}
	}
}

func TestNormalizeDateIsLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	instant, err := dateutil.NormalizeDate("2025-03-01", loc)
	require.NoError(t, err)

	// UTC midnight would show as Feb 28 in this zone
	assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), instant.UTC())
}

func TestNormalizeDatePassesTimestampsThrough(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	instant, err := dateutil.NormalizeDate("2025-03-01T15:30:00Z", loc)
	require.NoError(t, err)
	assert.True(t, instant.Equal(time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)))

	local, err := dateutil.NormalizeDate("2025-03-01T09:15", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", dateutil.CalendarDate(local, loc))
	assert.Equal(t, 9, local.In(loc).Hour())
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "03/01/2025", "2025-13-01", "2025-02-30", "tomorrow"} {
		_, err := dateutil.NormalizeDate(in, time.UTC)
		assert.Error(t, err, "input %q", in)
	}
}

func TestLocationFromContext(t *testing.T) {
	assert.Equal(t, time.UTC, dateutil.LocationFrom(context.Background()))

	loc := time.FixedZone("X", 3600)
	ctx := dateutil.WithLocation(context.Background(), loc)
	assert.Equal(t, loc, dateutil.LocationFrom(ctx))
}

func TestIsBareDate(t *testing.T) {
	assert.True(t, dateutil.IsBareDate("2025-03-01"))
	assert.False(t, dateutil.IsBareDate("2025-03-01T00:00:00Z"))
}

// Days on which the zone springs forward at local midnight, so 00:00 never happens.
var midnightGaps = []struct {
	zone  string
	date  string
	start string
}{
	{"America/Sao_Paulo", "2018-11-04", "2018-11-04T01:00:00-02:00"},
	{"America/Santiago", "2022-09-11", "2022-09-11T01:00:00-03:00"},
	{"America/Havana", "2023-03-12", "2023-03-12T01:00:00-04:00"},
}

func TestNormalizeDateMidnightGap(t *testing.T) {
	for _, tc := range midnightGaps {
		t.Run(tc.zone, func(t *testing.T) {
			loc := namedZone(t, tc.zone)
			instant, err := dateutil.NormalizeDate(tc.date, loc)
			require.NoError(t, err)
			assert.Equal(t, tc.date, dateutil.CalendarDate(instant, loc))

			want, err := time.Parse(time.RFC3339, tc.start)
			require.NoError(t, err)
			assert.True(t, want.Equal(instant), "got %s", instant.In(loc))
		})
	}
}

func TestStartOfDayMidnightGap(t *testing.T) {
	for _, tc := range midnightGaps {
		t.Run(tc.zone, func(t *testing.T) {
			loc := namedZone(t, tc.zone)
			want, err := time.Parse(time.RFC3339, tc.start)
			require.NoError(t, err)

			noon := want.Add(11 * time.Hour)
			start := dateutil.StartOfDay(noon, loc)
			assert.True(t, want.Equal(start), "got %s", start.In(loc))
			assert.Equal(t, tc.date, dateutil.CalendarDate(start, loc))
		})
	}
}

func TestNormalizeDateSkippedDay(t *testing.T) {
	// Samoa moved across the date line and never had 2011-12-30.
	_, err := dateutil.NormalizeDate("2011-12-30", namedZone(t, "Pacific/Apia"))
	assert.Error(t, err)

	instant, err := dateutil.NormalizeDate("2011-12-31", namedZone(t, "Pacific/Apia"))
	require.NoError(t, err)
	assert.Equal(t, "2011-12-31", dateutil.CalendarDate(instant, namedZone(t, "Pacific/Apia")))
}

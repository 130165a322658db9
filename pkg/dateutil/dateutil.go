// Package dateutil converts between user supplied calendar dates and stored instants.
//
// A bare "YYYY-MM-DD" is read as local midnight in the caller's zone, never as
// UTC midnight, and CalendarDate reverses the conversion in the same zone. Using
// the same location on both paths keeps the displayed date stable for viewers in
// negative UTC offsets.
package dateutil

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var bareDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// zone-less layouts are interpreted in the caller's location
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// IsBareDate reports whether s is exactly YYYY-MM-DD.
func IsBareDate(s string) bool {
	return bareDate.MatchString(strings.TrimSpace(s))
}

// NormalizeDate turns input into an instant. Bare dates become the start of
// that day in loc (midnight, or the end of a DST gap that swallows midnight);
// inputs that already carry a time component are parsed without adjustment.
func NormalizeDate(input string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if bareDate.MatchString(s) {
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		t, ok := firstInstant(d.Year(), d.Month(), d.Day(), loc)
		if !ok {
			return time.Time{}, fmt.Errorf("date %q does not exist in %s", s, loc)
		}
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or an RFC3339 timestamp", s)
}

// CalendarDate derives the YYYY-MM-DD a viewer in loc sees for t.
func CalendarDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	l := t.In(loc)
	start, ok := firstInstant(l.Year(), l.Month(), l.Day(), loc)
	if !ok {
		return t
	}
	return start
}

// firstInstant returns the earliest instant of the given day in loc. That is
// local midnight unless a transition skips 00:00, in which case the day starts
// where the gap ends. ok is false for days the zone skipped entirely.
func firstInstant(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if onDay(t.In(loc), year, month, day) {
		return t, true
	}
	// time.Date resolved the missing midnight with the earlier offset, landing
	// on the previous evening; the zone period it fell in ends at the gap.
	if _, end := t.ZoneBounds(); !end.IsZero() && onDay(end.In(loc), year, month, day) {
		return end, true
	}
	return t, false
}

func onDay(t time.Time, year int, month time.Month, day int) bool {
	y, m, d := t.Date()
	return y == year && m == month && d == day
}

type locationKey struct{}

var defaultLocation = time.UTC

// SetDefaultLocation sets the zone used when a request does not name one.
func SetDefaultLocation(loc *time.Location) {
	if loc != nil {
		defaultLocation = loc
	}
}

func WithLocation(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, locationKey{}, loc)
}

// LocationFrom returns the caller's zone stored in ctx, or the default.
func LocationFrom(ctx context.Context) *time.Location {
	if ctx != nil {
		if loc, ok := ctx.Value(locationKey{}).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return defaultLocation
}

// ParseLocation resolves an IANA zone name; empty names yield fallback.
func ParseLocation(name string, fallback *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, nil
	}
	return time.LoadLocation(name)
}

package booking

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// instantLayout always renders the UTC designator as a literal Z.
	instantLayout = "2006-01-02T15:04:05Z"
)

// Instant is an unambiguous point in time, kept in UTC.
type Instant struct {
	t time.Time
}

func NewInstant(t time.Time) Instant { return Instant{t: t.UTC().Truncate(time.Second)} }

func (i Instant) Time() time.Time { return i.t }

func (i Instant) IsZero() bool { return i.t.IsZero() }

// String renders e.g. 2025-03-10T04:30:00Z.
func (i Instant) String() string { return i.t.UTC().Format(instantLayout) }

// ToUTCInstant interprets date (YYYY-MM-DD) and clock (HH:MM) as wall time in the named IANA
// timezone and returns the matching UTC instant.
//
// Wall times that fall into a DST gap (never happen) or overlap (happen twice) are rejected with
// ErrAmbiguousLocalTime instead of picking an offset.
func ToUTCInstant(date, clock, timezone string) (Instant, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return Instant{}, fmt.Errorf("%w: date %q (want YYYY-MM-DD)", ErrInvalidDateTime, date)
	}
	if len(clock) != len(timeLayout) {
		return Instant{}, fmt.Errorf("%w: time %q (want HH:MM)", ErrInvalidDateTime, clock)
	}
	c, err := time.Parse(timeLayout, clock)
	if err != nil {
		return Instant{}, fmt.Errorf("%w: time %q (want HH:MM)", ErrInvalidDateTime, clock)
	}
	loc, err := LoadZone(timezone)
	if err != nil {
		return Instant{}, err
	}

	wall := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
	matches := resolveWall(wall, loc)
	switch len(matches) {
	case 1:
		return NewInstant(matches[0]), nil
	case 0:
		return Instant{}, fmt.Errorf("%w: %s %s does not exist in %s", ErrAmbiguousLocalTime, date, clock, timezone)
	default:
		return Instant{}, fmt.Errorf("%w: %s %s occurs %d times in %s", ErrAmbiguousLocalTime, date, clock, len(matches), timezone)
	}
}

// LoadZone loads an IANA zone. The empty name and "Local" are refused so a request never
// silently falls back to UTC or the host zone.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// resolveWall returns every instant whose wall clock in loc equals wall (given as UTC fields).
func resolveWall(wall time.Time, loc *time.Location) []time.Time {
	offsets := map[int]struct{}{}
	// no real zone is further than 14h from UTC, so every offset that could apply is seen here
	for h := -15; h <= 15; h++ {
		_, off := wall.Add(time.Duration(h) * time.Hour).In(loc).Zone()
		offsets[off] = struct{}{}
	}

	var out []time.Time
	seen := map[int64]struct{}{}
	for off := range offsets {
		cand := wall.Add(-time.Duration(off) * time.Second)
		lt := cand.In(loc)
		if lt.Year() != wall.Year() || lt.Month() != wall.Month() || lt.Day() != wall.Day() ||
			lt.Hour() != wall.Hour() || lt.Minute() != wall.Minute() {
			continue
		}
		if _, dup := seen[cand.Unix()]; dup {
			continue
		}
		seen[cand.Unix()] = struct{}{}
		out = append(out, cand)
	}
	return out
}

package slot

import (
	"fmt"
	"sort"
	"strings"
)

// Grid is an ordered set of bookable start times within a single day, in canonical HH:MM form,
// earliest first. Values are distinct.
type Grid struct {
	times []string
}

// DefaultGrid is the grid used when nothing else is configured.
var DefaultGrid = MustGrid("10:00", "11:00", "12:00", "15:00", "16:00", "17:00")

// NewGrid validates and sorts the given times. Every value must be a 24-hour HH:MM clock time
// and appear only once.
func NewGrid(times ...string) (Grid, error) {
	seen := make(map[string]struct{}, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		t = strings.TrimSpace(t)
		if !IsClockTime(t) {
			return Grid{}, fmt.Errorf("invalid slot time %q (want HH:MM)", t)
		}
		if _, dup := seen[t]; dup {
			return Grid{}, fmt.Errorf("duplicate slot time %q", t)
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	// zero-padded HH:MM sorts lexically in clock order
	sort.Strings(out)
	return Grid{times: out}, nil
}

func MustGrid(times ...string) Grid {
	g, err := NewGrid(times...)
	if err != nil {
		panic(err)
	}
	return g
}

// Times returns a copy of the grid values in offer order.
func (g Grid) Times() []string {
	out := make([]string, len(g.times))
	copy(out, g.times)
	return out
}

func (g Grid) Len() int { return len(g.times) }

func (g Grid) Contains(t string) bool {
	for _, v := range g.times {
		if v == t {
			return true
		}
	}
	return false
}

func (g Grid) String() string { return strings.Join(g.times, ",") }

// IsClockTime reports whether s is exactly HH:MM with 00<=HH<=23 and 00<=MM<=59.
func IsClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	return hh <= 23 && mm <= 59
}

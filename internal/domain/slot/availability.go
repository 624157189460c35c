package slot

// Availability is the result of checking a requested time against a grid.
// Exactly one of the two shapes is meaningful: Available with Time set, or
// not Available with Alternatives holding the whole grid in offer order.
type Availability struct {
	Available    bool
	Time         string
	Alternatives []string
}

// CheckAvailability reports whether requested is one of the grid's start times.
//
// Matching is exact on the string: "10:01" does not match "10:00" and malformed input simply
// misses. On a miss every grid value is offered, earliest first. Urgency and ranking are left to
// the caller.
func CheckAvailability(requested string, grid Grid) Availability {
	if grid.Contains(requested) {
		return Availability{Available: true, Time: requested}
	}
	return Availability{Alternatives: grid.Times()}
}

// Earliest returns the first alternative, if any.
func (a Availability) Earliest() (string, bool) {
	if len(a.Alternatives) == 0 {
		return "", false
	}
	return a.Alternatives[0], true
}

package slot

import "context"

// Source supplies the grid that applies to a calendar date (YYYY-MM-DD) in a timezone.
// Grids are expressed in that timezone's local clock.
type Source interface {
	AvailableSlotsFor(ctx context.Context, date, timezone string) (Grid, error)
}

// StaticSource serves one fixed grid for every date and timezone.
type StaticSource struct {
	Grid Grid
}

func (s StaticSource) AvailableSlotsFor(context.Context, string, string) (Grid, error) {
	return s.Grid, nil
}

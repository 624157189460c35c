package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/calbook/internal/domain/booking"
	"github.com/example/calbook/internal/domain/slot"
)

// GlobalTimezone keys the grid used when a timezone has none of its own.
const GlobalTimezone = "*"

var ErrBadGridKey = errors.New("bad slot grid key")

// GridEntry is one stored grid. Date is empty for a timezone default.
type GridEntry struct {
	TimeZone string
	Date     string
	Grid     slot.Grid
}

type SlotGridRepo struct{ pool *pgxpool.Pool }

func NewSlotGridRepo(pool *pgxpool.Pool) *SlotGridRepo { return &SlotGridRepo{pool: pool} }

// AvailableSlotsFor picks the most specific grid stored for the zone:
// the dated override, then the zone default, then the global default.
// A date that does not parse simply matches no override.
func (r *SlotGridRepo) AvailableSlotsFor(ctx context.Context, date, timezone string) (slot.Grid, error) {
	var day *time.Time
	if d, err := time.Parse(time.DateOnly, date); err == nil {
		day = &d
	}

	rows, err := r.pool.Query(ctx, `
		SELECT slot_time,
			CASE
				WHEN slot_date IS NOT NULL THEN 0
				WHEN timezone = $1 THEN 1
				ELSE 2
			END AS rank
		FROM slot_grid
		WHERE (timezone = $1 AND (slot_date = $2 OR slot_date IS NULL))
		   OR (timezone = $3 AND slot_date IS NULL)
		ORDER BY rank, slot_time
	`, timezone, day, GlobalTimezone)
	if err != nil {
		return slot.Grid{}, err
	}
	defer rows.Close()

	var times []string
	best := -1
	for rows.Next() {
		var t string
		var rank int
		if err := rows.Scan(&t, &rank); err != nil {
			return slot.Grid{}, err
		}
		if best == -1 {
			best = rank
		}
		if rank != best {
			break
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return slot.Grid{}, err
	}
	return slot.NewGrid(times...)
}

// ReplaceGrid swaps the stored grid for (timezone, date) in one transaction.
// An empty date targets the timezone default; an empty grid removes it.
func (r *SlotGridRepo) ReplaceGrid(ctx context.Context, timezone, date string, grid slot.Grid) error {
	if timezone != GlobalTimezone {
		if _, err := booking.LoadZone(timezone); err != nil {
			return fmt.Errorf("%w: %v", ErrBadGridKey, err)
		}
	}
	var day *time.Time
	if date != "" {
		d, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return fmt.Errorf("%w: date %q", ErrBadGridKey, date)
		}
		day = &d
	}
	if timezone == GlobalTimezone && day != nil {
		return fmt.Errorf("%w: the global grid has no dated overrides", ErrBadGridKey)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM slot_grid WHERE timezone = $1 AND slot_date IS NOT DISTINCT FROM $2`,
			timezone, day,
		); err != nil {
			return err
		}
		for _, t := range grid.Times() {
			if _, err := tx.Exec(ctx,
				`INSERT INTO slot_grid (timezone, slot_date, slot_time) VALUES ($1, $2, $3)`,
				timezone, day, t,
			); err != nil {
				return fmt.Errorf("insert %s: %w", t, err)
			}
		}
		return nil
	})
}

// ListGrids returns every stored grid, global default first.
func (r *SlotGridRepo) ListGrids(ctx context.Context) ([]GridEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT timezone, COALESCE(to_char(slot_date, 'YYYY-MM-DD'), ''), array_agg(slot_time ORDER BY slot_time)
		FROM slot_grid
		GROUP BY timezone, slot_date
		ORDER BY timezone <> $1, timezone, slot_date NULLS FIRST
	`, GlobalTimezone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GridEntry
	for rows.Next() {
		var e GridEntry
		var times []string
		if err := rows.Scan(&e.TimeZone, &e.Date, &times); err != nil {
			return nil, err
		}
		g, err := slot.NewGrid(times...)
		if err != nil {
			return nil, err
		}
		e.Grid = g
		out = append(out, e)
	}
	return out, rows.Err()
}

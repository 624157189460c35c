package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/calbook/internal/application/usecases"
	"github.com/example/calbook/internal/domain/slot"
	"github.com/example/calbook/internal/infrastructure/postgres"
)

func newSlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Inspect and manage slot grids",
	}
	cmd.AddCommand(newSlotsCheckCmd())
	cmd.AddCommand(newSlotsSetCmd())
	cmd.AddCommand(newSlotsListCmd())
	return cmd
}

func newSlotsCheckCmd() *cobra.Command {
	var date, clock, timezone string

	c := &cobra.Command{
		Use:   "check",
		Short: "Tell whether a local time is open, without booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if timezone == "" {
				timezone = a.cfg.DefaultTimeZone
			}
			av, err := usecases.CheckSlot{Slots: a.slots}.Execute(ctx, date, timezone, clock)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if av.Available {
				fmt.Fprintf(out, "%s %s (%s) is open\n", date, av.Time, timezone)
				return nil
			}
			if len(av.Alternatives) == 0 {
				fmt.Fprintf(out, "no open times on %s (%s)\n", date, timezone)
				return nil
			}
			fmt.Fprintf(out, "%s is taken; open: %s\n", clock, strings.Join(av.Alternatives, ", "))
			return nil
		},
	}
	c.Flags().StringVar(&date, "date", "", "local date YYYY-MM-DD")
	c.Flags().StringVar(&clock, "time", "", "local time HH:MM (24h)")
	c.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default DEFAULT_TIMEZONE)")
	_ = c.MarkFlagRequired("time")
	return c
}

func newSlotsSetCmd() *cobra.Command {
	var date, timezone, times string

	c := &cobra.Command{
		Use:   "set",
		Short: "Replace a stored grid (Postgres). An empty --times removes it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			pool, err := a.openPool(ctx)
			if err != nil {
				return err
			}
			if _, err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}

			grid, err := slot.NewGrid(splitTimes(times)...)
			if err != nil {
				return err
			}
			if err := postgres.NewSlotGridRepo(pool).ReplaceGrid(ctx, timezone, date, grid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "grid %s %s = [%s]\n", timezone, orDefault(date), grid)
			return nil
		},
	}
	c.Flags().StringVar(&timezone, "timezone", postgres.GlobalTimezone, `IANA timezone, or "*" for the global default`)
	c.Flags().StringVar(&date, "date", "", "local date YYYY-MM-DD (empty for the timezone default)")
	c.Flags().StringVar(&times, "times", "", "comma-separated HH:MM list")
	return c
}

func newSlotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored grids (Postgres)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			pool, err := a.openPool(ctx)
			if err != nil {
				return err
			}
			grids, err := postgres.NewSlotGridRepo(pool).ListGrids(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIMEZONE\tDATE\tTIMES")
			for _, g := range grids {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", g.TimeZone, orDefault(g.Date), g.Grid)
			}
			return tw.Flush()
		},
	}
}

func splitTimes(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(date string) string {
	if date == "" {
		return "default"
	}
	return date
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/calbook/internal/application/usecases"
	"github.com/example/calbook/internal/domain/booking"
)

func newBookCmd() *cobra.Command {
	var (
		name, email, phone string
		date, clock        string
		timezone, urgency  string
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Check a slot and book it, printing the reply a caller would hear",
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
			req := booking.Request{
				Attendee: booking.Attendee{Name: name, Email: email, Phone: phone},
				Date:     date,
				Time:     clock,
				TimeZone: timezone,
				Urgency:  urgency,
			}.WithDefaults()

			uc := usecases.StartBooking{Slots: a.slots, Backend: a.provider, Log: a.log.Named("booking")}
			out := uc.Execute(ctx, booking.Session{ID: "cli"}, req)

			fmt.Fprintln(cmd.OutOrStdout(), usecases.RenderOutcome(out, req.IsUrgent()))
			if out.Status == booking.StatusFailed {
				return fmt.Errorf("booking failed (%s)", booking.FailureKind(out.Err))
			}
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "attendee name")
	c.Flags().StringVar(&email, "email", "", "attendee email")
	c.Flags().StringVar(&phone, "phone", "", "attendee phone number")
	c.Flags().StringVar(&date, "date", "", "local date YYYY-MM-DD")
	c.Flags().StringVar(&clock, "time", "", "local time HH:MM (24h)")
	c.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default DEFAULT_TIMEZONE)")
	c.Flags().StringVar(&urgency, "urgency", booking.UrgencyNormal, "normal or urgent")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("time")
	return c
}

package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/calbook/internal/domain/booking"
	"github.com/example/calbook/internal/domain/slot"
)

// StartBooking checks a requested local time against the slot grid and, when it is open,
// books it with a single backend call.
//
// Calls are independent. Nothing is retried, deduplicated or recorded locally, so two
// identical requests can both be confirmed by the backend.
type StartBooking struct {
	Slots   slot.Source
	Backend booking.Creator
	Log     *zap.Logger
}

func (u StartBooking) Execute(ctx context.Context, sess booking.Session, req booking.Request) booking.Outcome {
	log := u.logger().With(
		zap.String("session_id", sess.ID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
		zap.String("timezone", req.TimeZone),
	)
	if u.Slots == nil || u.Backend == nil {
		return u.fail(log, fmt.Errorf("%w: start booking is missing slots or backend", booking.ErrNotConfigured))
	}

	// the grid is in the caller's timezone, so availability is decided on the local time string
	grid, err := u.Slots.AvailableSlotsFor(ctx, req.Date, req.TimeZone)
	if err != nil {
		return u.fail(log, fmt.Errorf("%w: %v", booking.ErrSlotLookup, err))
	}
	av := slot.CheckAvailability(req.Time, grid)
	if !av.Available {
		log.Info("requested slot unavailable", zap.Strings("alternatives", av.Alternatives))
		return booking.Unavailable(av.Alternatives)
	}

	if err := req.Attendee.Validate(); err != nil {
		return u.fail(log, err)
	}
	start, err := booking.ToUTCInstant(req.Date, req.Time, req.TimeZone)
	if err != nil {
		return u.fail(log, err)
	}

	conf, err := u.Backend.CreateBooking(ctx, booking.CreateRequest{
		Start:    start,
		Attendee: req.Attendee,
		TimeZone: req.TimeZone,
	})
	if err != nil {
		return u.fail(log.With(zap.String("start_utc", start.String())), err)
	}

	log.Info("booking confirmed",
		zap.String("start_utc", start.String()),
		zap.String("booking_uid", conf.UID),
	)
	return booking.Confirmed(req.Date, req.Time)
}

func (u StartBooking) fail(log *zap.Logger, err error) booking.Outcome {
	kind := booking.FailureKind(err)
	if booking.IsInputError(err) {
		log.Info("booking request rejected", zap.String("failure_kind", kind), zap.Error(err))
	} else {
		log.Warn("booking failed", zap.String("failure_kind", kind), zap.Error(err))
	}
	return booking.Failed(err)
}

func (u StartBooking) logger() *zap.Logger {
	if u.Log == nil {
		return zap.NewNop()
	}
	return u.Log
}

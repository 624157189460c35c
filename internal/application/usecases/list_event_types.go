package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/example/calbook/internal/domain/booking"
)

type ListEventTypes struct {
	Lister booking.EventTypeLister
	Log    *zap.Logger
}

// Execute returns a sentence naming the bookable event types by title.
func (u ListEventTypes) Execute(ctx context.Context) string {
	if u.Lister == nil {
		return "The booking calendar is not configured."
	}
	ets, err := u.Lister.ListEventTypes(ctx)
	if err != nil {
		if u.Log != nil {
			u.Log.Warn("list event types failed", zap.String("failure_kind", booking.FailureKind(err)), zap.Error(err))
		}
		if errors.Is(err, booking.ErrNotConfigured) {
			return "The booking calendar is not configured."
		}
		return "Unable to fetch events from the booking calendar."
	}

	titles := make([]string, 0, len(ets))
	for _, et := range ets {
		if t := strings.TrimSpace(et.Title); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		return "No event types found."
	}
	return "Available events are: " + strings.Join(titles, ", ")
}

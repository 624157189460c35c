package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/example/calbook/internal/domain/booking"
	"github.com/example/calbook/internal/domain/slot"
)

func TestRenderOutcome(t *testing.T) {
	alts := []string{"10:00", "11:00", "12:00"}
	generic := "Sorry, I couldn't complete the booking right now. Would you like to try a different time?"

	cases := []struct {
		name   string
		out    booking.Outcome
		urgent bool
		want   string
	}{
		{
			name: "confirmed echoes local date and time",
			out:  booking.Confirmed("2025-03-10", "10:00"),
			want: "Your appointment is confirmed for 2025-03-10 at 10:00. You'll receive a confirmation email shortly.",
		},
		{
			name: "unavailable offers everything",
			out:  booking.Unavailable(alts),
			want: "That time isn't available. I can offer 10:00, 11:00, 12:00. Which one works for you?",
		},
		{
			name:   "urgent offers the earliest",
			out:    booking.Unavailable(alts),
			urgent: true,
			want:   "I don't have that time available. The earliest available slot is 10:00. Would you like me to book that?",
		},
		{
			name:   "no open times",
			out:    booking.Unavailable(nil),
			urgent: true,
			want:   "I don't have any open times on that day. Would you like to try another date?",
		},
		{name: "transport", out: booking.Failed(fmt.Errorf("%w: refused", booking.ErrTransport)), want: generic},
		{name: "backend", out: booking.Failed(fmt.Errorf("%w: taken", booking.ErrBackendDomain)), want: generic},
		{name: "slot lookup", out: booking.Failed(booking.ErrSlotLookup), want: generic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RenderOutcome(tc.out, tc.urgent))
		})
	}
}

func TestRenderOutcome_InputFailuresAskToRestate(t *testing.T) {
	for _, err := range []error{
		booking.ErrInvalidDateTime,
		booking.ErrUnknownTimezone,
		booking.ErrAmbiguousLocalTime,
		booking.ErrInvalidAttendee,
	} {
		msg := RenderOutcome(booking.Failed(fmt.Errorf("%w: x", err)), false)
		assert.NotContains(t, msg, "couldn't complete the booking", err.Error())
		assert.Contains(t, msg, "?", err.Error())
	}
}

func TestListEventTypes_Execute(t *testing.T) {
	t.Run("titles", func(t *testing.T) {
		l := &mockLister{}
		l.On("ListEventTypes", mock.Anything).Return([]booking.EventType{{Title: "Haircut"}, {Title: " "}, {Title: "Colouring"}}, nil)
		assert.Equal(t, "Available events are: Haircut, Colouring", ListEventTypes{Lister: l}.Execute(context.Background()))
	})
	t.Run("empty", func(t *testing.T) {
		l := &mockLister{}
		l.On("ListEventTypes", mock.Anything).Return(nil, nil)
		assert.Equal(t, "No event types found.", ListEventTypes{Lister: l}.Execute(context.Background()))
	})
	t.Run("backend error", func(t *testing.T) {
		l := &mockLister{}
		l.On("ListEventTypes", mock.Anything).Return(nil, fmt.Errorf("%w: http 500", booking.ErrBackendDomain))
		assert.Equal(t, "Unable to fetch events from the booking calendar.", ListEventTypes{Lister: l}.Execute(context.Background()))
	})
	t.Run("not configured", func(t *testing.T) {
		l := &mockLister{}
		l.On("ListEventTypes", mock.Anything).Return(nil, booking.ErrNotConfigured)
		assert.Equal(t, "The booking calendar is not configured.", ListEventTypes{Lister: l}.Execute(context.Background()))
		assert.Equal(t, "The booking calendar is not configured.", ListEventTypes{}.Execute(context.Background()))
	})
}

func TestCheckSlot(t *testing.T) {
	uc := CheckSlot{Slots: slot.StaticSource{Grid: slot.DefaultGrid}}
	av, err := uc.Execute(context.Background(), "2025-03-10", "Asia/Kolkata", "15:00")
	require.NoError(t, err)
	assert.True(t, av.Available)

	src := &mockSource{}
	src.On("AvailableSlotsFor", mock.Anything, "2025-03-10", "UTC").Return(slot.Grid{}, errors.New("down"))
	_, err = CheckSlot{Slots: src}.Execute(context.Background(), "2025-03-10", "UTC", "15:00")
	assert.ErrorIs(t, err, booking.ErrSlotLookup)

	_, err = CheckSlot{}.Execute(context.Background(), "", "", "")
	assert.Error(t, err)
}

func TestPingProvider(t *testing.T) {
	assert.NoError(t, PingProvider{Provider: stubProvider{}}.Execute(context.Background()))

	err := PingProvider{Provider: stubProvider{pingErr: booking.ErrNotConfigured}}.Execute(context.Background())
	assert.ErrorIs(t, err, booking.ErrNotConfigured)
	assert.ErrorContains(t, err, "stub")

	assert.Error(t, PingProvider{}.Execute(context.Background()))
}

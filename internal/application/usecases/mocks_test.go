package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/example/calbook/internal/domain/booking"
	"github.com/example/calbook/internal/domain/slot"
)

type mockCreator struct{ mock.Mock }

func (m *mockCreator) CreateBooking(ctx context.Context, req booking.CreateRequest) (booking.Confirmation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(booking.Confirmation), args.Error(1)
}

type mockSource struct{ mock.Mock }

func (m *mockSource) AvailableSlotsFor(ctx context.Context, date, timezone string) (slot.Grid, error) {
	args := m.Called(ctx, date, timezone)
	return args.Get(0).(slot.Grid), args.Error(1)
}

type mockLister struct{ mock.Mock }

func (m *mockLister) ListEventTypes(ctx context.Context) ([]booking.EventType, error) {
	args := m.Called(ctx)
	ets, _ := args.Get(0).([]booking.EventType)
	return ets, args.Error(1)
}

type stubProvider struct {
	pingErr error
}

func (stubProvider) Name() string { return "stub" }

func (p stubProvider) Ping(context.Context) error { return p.pingErr }

func (stubProvider) CreateBooking(context.Context, booking.CreateRequest) (booking.Confirmation, error) {
	return booking.Confirmation{}, nil
}

func (stubProvider) ListEventTypes(context.Context) ([]booking.EventType, error) { return nil, nil }

package usecases

import (
	"context"
	"fmt"

	"github.com/example/calbook/internal/domain/booking"
	"github.com/example/calbook/internal/domain/slot"
)

// CheckSlot answers availability questions without booking anything.
type CheckSlot struct {
	Slots slot.Source
}

func (u CheckSlot) Execute(ctx context.Context, date, timezone, requested string) (slot.Availability, error) {
	if u.Slots == nil {
		return slot.Availability{}, fmt.Errorf("slot source is nil")
	}
	grid, err := u.Slots.AvailableSlotsFor(ctx, date, timezone)
	if err != nil {
		return slot.Availability{}, fmt.Errorf("%w: %v", booking.ErrSlotLookup, err)
	}
	return slot.CheckAvailability(requested, grid), nil
}

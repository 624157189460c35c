package usecases

import (
	"context"
	"fmt"

	"github.com/example/calbook/internal/domain/booking"
)

type PingProvider struct {
	Provider booking.Provider
}

func (u PingProvider) Execute(ctx context.Context) error {
	if u.Provider == nil {
		return fmt.Errorf("provider is nil")
	}
	if err := u.Provider.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", u.Provider.Name(), err)
	}
	return nil
}

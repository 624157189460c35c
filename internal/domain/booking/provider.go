package booking

import "context"

// CreateRequest is what gets sent to the backend for one booking.
type CreateRequest struct {
	Start    Instant
	Attendee Attendee
	TimeZone string
}

type Confirmation struct {
	UID    string
	Status string
}

// Creator makes exactly one remote create-booking call. Errors wrap ErrTransport or
// ErrBackendDomain.
type Creator interface {
	CreateBooking(ctx context.Context, req CreateRequest) (Confirmation, error)
}

type EventTypeLister interface {
	ListEventTypes(ctx context.Context) ([]EventType, error)
}

type Provider interface {
	Creator
	EventTypeLister
	Name() string
	Ping(ctx context.Context) error
}

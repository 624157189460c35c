package booking

import "errors"

// Input normalization failures. The caller can recover by restating the request.
var (
	ErrInvalidDateTime    = errors.New("invalid date or time")
	ErrUnknownTimezone    = errors.New("unknown timezone")
	ErrAmbiguousLocalTime = errors.New("local time is ambiguous or does not exist in timezone")
	ErrInvalidAttendee    = errors.New("invalid attendee")
)

// Failures past input validation.
var (
	ErrSlotLookup    = errors.New("slot lookup failed")
	ErrTransport     = errors.New("booking backend unreachable")
	ErrBackendDomain = errors.New("booking backend rejected request")
)

// IsInputError reports whether err came from validating caller input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDateTime) ||
		errors.Is(err, ErrUnknownTimezone) ||
		errors.Is(err, ErrAmbiguousLocalTime) ||
		errors.Is(err, ErrInvalidAttendee)
}

// FailureKind is a short label for logs.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidDateTime):
		return "invalid_datetime"
	case errors.Is(err, ErrUnknownTimezone):
		return "unknown_timezone"
	case errors.Is(err, ErrAmbiguousLocalTime):
		return "ambiguous_local_time"
	case errors.Is(err, ErrInvalidAttendee):
		return "invalid_attendee"
	case errors.Is(err, ErrSlotLookup):
		return "slot_lookup"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrBackendDomain):
		return "backend_domain"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	default:
		return "unknown"
	}
}

// ErrNotConfigured means the backend credentials or settings are missing.
var ErrNotConfigured = errors.New("booking backend not configured")

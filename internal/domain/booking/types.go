package booking

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"

	DefaultTimeZone = "Asia/Kolkata"
)

type Attendee struct {
	Name  string
	Email string
	Phone string
}

// Validate requires every contact field. Email must at least parse as an address.
func (a Attendee) Validate() error {
	var missing []string
	if strings.TrimSpace(a.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(a.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(a.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidAttendee, strings.Join(missing, ", "))
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return fmt.Errorf("%w: email %q", ErrInvalidAttendee, a.Email)
	}
	return nil
}

// Request is one booking attempt in the caller's local time.
type Request struct {
	Attendee Attendee
	Date     string // YYYY-MM-DD
	Time     string // HH:MM, 24h
	TimeZone string // IANA id
	Urgency  string
}

// WithDefaults fills the timezone and urgency the way the voice front end does.
func (r Request) WithDefaults() Request {
	if strings.TrimSpace(r.TimeZone) == "" {
		r.TimeZone = DefaultTimeZone
	}
	if strings.TrimSpace(r.Urgency) == "" {
		r.Urgency = UrgencyNormal
	}
	return r
}

func (r Request) IsUrgent() bool {
	return strings.EqualFold(strings.TrimSpace(r.Urgency), UrgencyUrgent)
}

// Session is the per-caller context handed to the submitter. It only correlates logs.
type Session struct {
	ID string
}

type Status string

const (
	StatusConfirmed   Status = "confirmed"
	StatusUnavailable Status = "unavailable"
	StatusFailed      Status = "failed"
)

// Outcome is what a booking attempt reports back. Confirmed echoes the requested local date and
// time. Failed keeps the cause in Err for diagnostics; nothing else about the attempt is retained.
type Outcome struct {
	Status       Status
	Date         string
	Time         string
	Alternatives []string
	Err          error
}

func Confirmed(date, tm string) Outcome {
	return Outcome{Status: StatusConfirmed, Date: date, Time: tm}
}

func Unavailable(alternatives []string) Outcome {
	return Outcome{Status: StatusUnavailable, Alternatives: alternatives}
}

func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

type EventType struct {
	ID     int64  `json:"id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Length int    `json:"length"`
}

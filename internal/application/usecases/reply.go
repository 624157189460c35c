package usecases

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/calbook/internal/domain/booking"
)

// RenderOutcome turns an outcome into the sentence the voice front end speaks.
// Urgency only changes how alternatives are offered.
func RenderOutcome(o booking.Outcome, urgent bool) string {
	switch o.Status {
	case booking.StatusConfirmed:
		return fmt.Sprintf("Your appointment is confirmed for %s at %s. You'll receive a confirmation email shortly.", o.Date, o.Time)

	case booking.StatusUnavailable:
		if len(o.Alternatives) == 0 {
			return "I don't have any open times on that day. Would you like to try another date?"
		}
		if urgent {
			return fmt.Sprintf("I don't have that time available. The earliest available slot is %s. Would you like me to book that?", o.Alternatives[0])
		}
		return fmt.Sprintf("That time isn't available. I can offer %s. Which one works for you?", strings.Join(o.Alternatives, ", "))

	case booking.StatusFailed:
		return failureReply(o.Err)
	}
	return "Sorry, something went wrong. Could we try that again?"
}

func failureReply(err error) string {
	switch {
	case errors.Is(err, booking.ErrInvalidDateTime):
		return "I didn't catch that date and time. Could you give me the date as year, month and day, and the time in hours and minutes?"
	case errors.Is(err, booking.ErrUnknownTimezone):
		return "I don't recognise that timezone. Which city or timezone are you in?"
	case errors.Is(err, booking.ErrAmbiguousLocalTime):
		return "That time falls on a daylight saving change, so it's ambiguous. Could you pick a different time?"
	case errors.Is(err, booking.ErrInvalidAttendee):
		return "I still need a valid name, email and phone number to make the booking. Could you give me those?"
	}
	// transport and backend failures read the same to the caller
	return "Sorry, I couldn't complete the booking right now. Would you like to try a different time?"
}

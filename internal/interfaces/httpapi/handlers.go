package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/calbook/internal/application/usecases"
	"github.com/example/calbook/internal/domain/booking"
)

type Handlers struct {
	Book            usecases.StartBooking
	EventTypes      usecases.ListEventTypes
	Check           usecases.CheckSlot
	DefaultTimeZone string
}

type startBookingBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	TimeZone string `json:"timezone"`
	Urgency  string `json:"urgency"`
}

type startBookingResponse struct {
	Status       booking.Status `json:"status"`
	Message      string         `json:"message"`
	Alternatives []string       `json:"alternatives"`
}

func (h Handlers) healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h Handlers) eventTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.EventTypes.Execute(c.Request.Context())})
}

func (h Handlers) startBooking(c *gin.Context) {
	var body startBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	req := booking.Request{
		Attendee: booking.Attendee{Name: body.Name, Email: body.Email, Phone: body.Phone},
		Date:     strings.TrimSpace(body.Date),
		Time:     strings.TrimSpace(body.Time),
		TimeZone: strings.TrimSpace(body.TimeZone),
		Urgency:  body.Urgency,
	}
	if req.TimeZone == "" {
		req.TimeZone = h.DefaultTimeZone
	}
	req = req.WithDefaults()

	out := h.Book.Execute(c.Request.Context(), sessionFrom(c), req)
	alts := out.Alternatives
	if alts == nil {
		alts = []string{}
	}
	c.JSON(statusFor(out), startBookingResponse{
		Status:       out.Status,
		Message:      usecases.RenderOutcome(out, req.IsUrgent()),
		Alternatives: alts,
	})
}

// statusFor keeps confirmed and unavailable at 200 since both are answers
// the caller can act on.
func statusFor(out booking.Outcome) int {
	if out.Status != booking.StatusFailed {
		return http.StatusOK
	}
	switch {
	case booking.IsInputError(out.Err):
		return http.StatusUnprocessableEntity
	case errors.Is(out.Err, booking.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func (h Handlers) slots(c *gin.Context) {
	date := c.Query("date")
	tz := strings.TrimSpace(c.Query("timezone"))
	if tz == "" {
		tz = h.DefaultTimeZone
	}
	if tz == "" {
		tz = booking.DefaultTimeZone
	}
	av, err := h.Check.Execute(c.Request.Context(), date, tz, c.Query("time"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "slot lookup failed"})
		return
	}
	alts := av.Alternatives
	if alts == nil {
		alts = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"timezone":     tz,
		"time":         av.Time,
		"available":    av.Available,
		"alternatives": alts,
	})
}

package booking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUTCInstant(t *testing.T) {
	cases := []struct {
		name           string
		date, clock, tz string
		want           string
	}{
		{"kolkata has no DST", "2025-03-10", "10:00", "Asia/Kolkata", "2025-03-10T04:30:00Z"},
		{"utc stays Z", "2025-03-10", "10:00", "UTC", "2025-03-10T10:00:00Z"},
		{"new york winter", "2025-01-15", "09:00", "America/New_York", "2025-01-15T14:00:00Z"},
		{"new york summer", "2025-07-15", "09:00", "America/New_York", "2025-07-15T13:00:00Z"},
		{"london summer", "2025-06-01", "12:00", "Europe/London", "2025-06-01T11:00:00Z"},
		{"crosses date line backwards", "2025-03-10", "00:30", "Asia/Tokyo", "2025-03-09T15:30:00Z"},
		{"kathmandu quarter hour", "2025-03-10", "10:00", "Asia/Kathmandu", "2025-03-10T04:15:00Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToUTCInstant(tc.date, tc.clock, tc.tz)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestToUTCInstant_InvalidDateTime(t *testing.T) {
	for _, in := range [][2]string{
		{"10-03-2025", "10:00"},
		{"2025-3-10", "10:00"},
		{"2025-02-30", "10:00"},
		{"", "10:00"},
		{"2025-03-10", "9:00"},
		{"2025-03-10", "10:00:00"},
		{"2025-03-10", "24:00"},
		{"2025-03-10", "10am"},
	} {
		_, err := ToUTCInstant(in[0], in[1], "Asia/Kolkata")
		assert.ErrorIs(t, err, ErrInvalidDateTime, fmt.Sprint(in))
	}
}

func TestToUTCInstant_UnknownTimezone(t *testing.T) {
	for _, tz := range []string{"Mars/Olympus_Mons", "", "Local", "IST", "../etc/passwd"} {
		_, err := ToUTCInstant("2025-03-10", "10:00", tz)
		assert.ErrorIs(t, err, ErrUnknownTimezone, tz)
	}
}

func TestToUTCInstant_DSTEdges(t *testing.T) {
	// 2025-03-09 02:30 never happens in New York.
	_, err := ToUTCInstant("2025-03-09", "02:30", "America/New_York")
	assert.ErrorIs(t, err, ErrAmbiguousLocalTime)
	assert.ErrorContains(t, err, "does not exist")

	// 2025-11-02 01:30 happens twice in New York.
	_, err = ToUTCInstant("2025-11-02", "01:30", "America/New_York")
	assert.ErrorIs(t, err, ErrAmbiguousLocalTime)
	assert.ErrorContains(t, err, "occurs 2 times")

	// Either side of the transitions is fine.
	got, err := ToUTCInstant("2025-03-09", "03:00", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09T07:00:00Z", got.String())

	got, err = ToUTCInstant("2025-11-02", "02:00", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-02T07:00:00Z", got.String())
}

func TestInstant_String(t *testing.T) {
	loc := time.FixedZone("x", 5*3600+1800)
	i := NewInstant(time.Date(2025, 3, 10, 10, 0, 0, 123456789, loc))
	assert.Equal(t, "2025-03-10T04:30:00Z", i.String())
	assert.False(t, i.IsZero())
	assert.True(t, Instant{}.IsZero())
}

func TestAttendee_Validate(t *testing.T) {
	ok := Attendee{Name: "Asha", Email: "asha@example.com", Phone: "+919800000000"}
	require.NoError(t, ok.Validate())

	err := Attendee{Name: " ", Email: "asha@example.com"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidAttendee)
	assert.ErrorContains(t, err, "name, phone")

	err = Attendee{Name: "Asha", Email: "not-an-email", Phone: "1"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidAttendee)
}

func TestRequest_WithDefaults(t *testing.T) {
	r := Request{Date: "2025-03-10", Time: "10:00"}.WithDefaults()
	assert.Equal(t, DefaultTimeZone, r.TimeZone)
	assert.Equal(t, UrgencyNormal, r.Urgency)
	assert.False(t, r.IsUrgent())

	r = Request{TimeZone: "Europe/Paris", Urgency: "URGENT"}.WithDefaults()
	assert.Equal(t, "Europe/Paris", r.TimeZone)
	assert.True(t, r.IsUrgent())
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, "", FailureKind(nil))
	assert.Equal(t, "transport", FailureKind(fmt.Errorf("calcom: %w", ErrTransport)))
	assert.Equal(t, "backend_domain", FailureKind(fmt.Errorf("calcom: %w", ErrBackendDomain)))
	assert.Equal(t, "unknown_timezone", FailureKind(ErrUnknownTimezone))
	assert.Equal(t, "unknown", FailureKind(errors.New("boom")))

	assert.True(t, IsInputError(fmt.Errorf("x: %w", ErrAmbiguousLocalTime)))
	assert.False(t, IsInputError(ErrTransport))
}

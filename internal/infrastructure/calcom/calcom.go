package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/example/calbook/internal/domain/booking"
	"github.com/example/calbook/internal/infrastructure/config"
)

const (
	defaultBaseURL    = "https://api.cal.com"
	defaultAPIVersion = "2024-08-13"
	defaultTimeout    = 10 * time.Second

	// attendees are always addressed in English
	attendeeLanguage = "en"

	maxBodyBytes = 1 << 20
)

type Provider struct {
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger

	base       string
	apiKey     string
	apiVersion string
	eventSlug  string
	username   string
}

func New(cfg config.Config, log *zap.Logger) *Provider {
	base := strings.TrimRight(strings.TrimSpace(cfg.CalBaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	version := cfg.CalAPIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	timeout := cfg.CalTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	perMin := cfg.CalRatePerMinute
	if perMin < 1 {
		perMin = 60
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		http:       &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		log:        log.Named("calcom"),
		base:       base,
		apiKey:     cfg.CalAPIKey,
		apiVersion: version,
		eventSlug:  cfg.CalEventSlug,
		username:   cfg.CalUsername,
	}
}

func (p *Provider) Name() string { return "calcom" }

func (p *Provider) Ping(ctx context.Context) error {
	if strings.TrimSpace(p.apiKey) == "" {
		return fmt.Errorf("%w: CAL_API_KEY is empty", booking.ErrNotConfigured)
	}
	if p.eventSlug == "" || p.username == "" {
		return fmt.Errorf("%w: CAL_EVENT_SLUG and CAL_USERNAME are required", booking.ErrNotConfigured)
	}
	return nil
}

type attendeePayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	TimeZone    string `json:"timeZone"`
	Language    string `json:"language"`
}

type createPayload struct {
	Start         string          `json:"start"`
	EventTypeSlug string          `json:"eventTypeSlug"`
	Username      string          `json:"username"`
	Attendee      attendeePayload `json:"attendee"`
}

// CreateBooking posts one booking to /v2/bookings. It never retries and sends no
// idempotency key, so two identical calls can create two bookings.
func (p *Provider) CreateBooking(ctx context.Context, req booking.CreateRequest) (booking.Confirmation, error) {
	if err := p.Ping(ctx); err != nil {
		return booking.Confirmation{}, err
	}
	b, err := json.Marshal(createPayload{
		Start:         req.Start.String(),
		EventTypeSlug: p.eventSlug,
		Username:      p.username,
		Attendee: attendeePayload{
			Name:        req.Attendee.Name,
			Email:       req.Attendee.Email,
			PhoneNumber: req.Attendee.Phone,
			TimeZone:    req.TimeZone,
			Language:    attendeeLanguage,
		},
	})
	if err != nil {
		return booking.Confirmation{}, fmt.Errorf("calcom encode booking: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+"/v2/bookings", bytes.NewReader(b))
	if err != nil {
		return booking.Confirmation{}, fmt.Errorf("%w: build request: %v", booking.ErrTransport, err)
	}
	hreq.Header.Set("Authorization", "Bearer "+p.apiKey)
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("cal-api-version", p.apiVersion)

	status, body, err := p.do(ctx, hreq)
	if err != nil {
		return booking.Confirmation{}, err
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return booking.Confirmation{}, fmt.Errorf("%w: calcom book http %d: non-JSON body", booking.ErrTransport, status)
	}
	if raw, ok := parsed["error"]; ok {
		return booking.Confirmation{}, fmt.Errorf("%w: calcom book http %d: %s", booking.ErrBackendDomain, status, errorMessage(raw))
	}
	if status < 200 || status >= 300 {
		return booking.Confirmation{}, fmt.Errorf("%w: calcom book http %d", booking.ErrBackendDomain, status)
	}

	conf := booking.Confirmation{}
	var st string
	if json.Unmarshal(parsed["status"], &st) == nil {
		conf.Status = st
	}
	var data struct {
		UID string `json:"uid"`
	}
	if json.Unmarshal(parsed["data"], &data) == nil {
		conf.UID = data.UID
	}
	return conf, nil
}

// ListEventTypes reads /v1/event-types.
func (p *Provider) ListEventTypes(ctx context.Context) ([]booking.EventType, error) {
	if strings.TrimSpace(p.apiKey) == "" {
		return nil, fmt.Errorf("%w: CAL_API_KEY is empty", booking.ErrNotConfigured)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.base+"/v1/event-types", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", booking.ErrTransport, err)
	}
	hreq.Header.Set("Authorization", "Bearer "+p.apiKey)

	status, body, err := p.do(ctx, hreq)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: calcom event types http %d", booking.ErrBackendDomain, status)
	}
	var parsed struct {
		EventTypes []booking.EventType `json:"event_types"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: calcom parse event types: %v", booking.ErrTransport, err)
	}
	return parsed.EventTypes, nil
}

func (p *Provider) do(ctx context.Context, hreq *http.Request) (int, []byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%w: rate limit wait: %v", booking.ErrTransport, err)
	}

	start := time.Now()
	hresp, err := p.http.Do(hreq)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", booking.ErrTransport, hreq.Method, hreq.URL.Path, err)
	}
	defer hresp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(hresp.Body, maxBodyBytes))
	if err != nil {
		return hresp.StatusCode, nil, fmt.Errorf("%w: read body: %v", booking.ErrTransport, err)
	}
	p.log.Debug("calcom call",
		zap.String("method", hreq.Method),
		zap.String("path", hreq.URL.Path),
		zap.Int("status", hresp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	return hresp.StatusCode, body, nil
}

// errorMessage flattens the error field, which Cal.com sends either as a string or as
// {"code": ..., "message": ...}.
func errorMessage(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &obj) == nil && (obj.Code != "" || obj.Message != "") {
		return strings.TrimSpace(obj.Code + " " + obj.Message)
	}
	return string(raw)
}

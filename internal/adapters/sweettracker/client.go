package sweettracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/ports"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL  = "https://info.sweettracker.co.kr/api/v1"
	maxResponseSize = 1 << 20
	userAgent       = "pt/tracking"
)

var ErrMissingAPIKey = errors.New("sweettracker api key is empty")

// Client talks to the SweetTracker REST API. It serves both the carrier
// directory and tracking lookups.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	validate   *validator.Validate
	logger     zerolog.Logger
}

var (
	_ ports.CarrierSource  = (*Client)(nil)
	_ ports.TrackingSource = (*Client)(nil)
)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: http.DefaultClient,
		validate:   validator.New(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) FetchAll(ctx context.Context) ([]domain.Carrier, error) {
	var payload companyListPayload
	if err := c.get(ctx, "fetch carriers", "/companylist", url.Values{}, &payload); err != nil {
		return nil, err
	}

	if payload.Status != nil && !*payload.Status {
		return nil, &domain.RequestError{Code: payload.Code, Message: payload.Msg}
	}

	carriers := make([]domain.Carrier, 0, len(payload.Company))
	for _, company := range payload.Company {
		carriers = append(carriers, domain.Carrier{
			International: strings.EqualFold(strings.TrimSpace(company.International), "true"),
			Code:          strings.TrimSpace(company.Code),
			Name:          strings.TrimSpace(company.Name),
		})
	}

	return carriers, nil
}

type queryRequest struct {
	CarrierCode string `validate:"required,max=8"`
	InvoiceNo   string `validate:"required,max=64,printascii"`
}

func (c *Client) Query(ctx context.Context, carrierCode, invoiceNo string) (domain.TrackingResult, error) {
	req := queryRequest{
		CarrierCode: strings.TrimSpace(carrierCode),
		InvoiceNo:   strings.TrimSpace(invoiceNo),
	}
	if err := c.validate.Struct(req); err != nil {
		return domain.TrackingResult{}, &domain.RequestError{Message: invalidRequestMessage(err)}
	}

	params := url.Values{}
	params.Set("t_code", req.CarrierCode)
	params.Set("t_invoice", req.InvoiceNo)

	var payload trackingInfoPayload
	if err := c.get(ctx, "query tracking", "/trackingInfo", params, &payload); err != nil {
		return domain.TrackingResult{}, err
	}

	if payload.Status != nil && !*payload.Status && domain.IsInvalidRequestCode(payload.Code) {
		return domain.TrackingResult{}, &domain.RequestError{Code: payload.Code, Message: payload.Msg}
	}

	return toTrackingResult(payload), nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	params.Set("t_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("op", op).Str("path", path).Msg("sweettracker request")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &domain.UnavailableError{Op: op, Err: err}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return &domain.UnavailableError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug().Str("op", op).Int("status", response.StatusCode).Int("bytes", len(body)).Msg("sweettracker response")

	switch {
	case response.StatusCode >= 500:
		return &domain.UnavailableError{Op: op, Err: fmt.Errorf("status %d", response.StatusCode)}
	case response.StatusCode >= 400:
		return &domain.RequestError{
			Code:    fmt.Sprintf("%d", response.StatusCode),
			Message: rejectionMessage(body, response.StatusCode),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.UnavailableError{Op: op, Err: fmt.Errorf("decode payload: %w", err)}
	}

	return nil
}

func rejectionMessage(body []byte, status int) string {
	var payload struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Msg) != "" {
		return strings.TrimSpace(payload.Msg)
	}

	return fmt.Sprintf("request rejected with status %d", status)
}

func invalidRequestMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid tracking request"
	}

	first := validationErrs[0]
	switch first.Field() {
	case "CarrierCode":
		return "carrier code is required"
	case "InvoiceNo":
		if first.Tag() == "required" {
			return "invoice number is required"
		}
		return "invoice number is invalid"
	default:
		return "invalid tracking request"
	}
}

func toTrackingResult(payload trackingInfoPayload) domain.TrackingResult {
	events := make([]domain.TrackingEvent, 0, len(payload.TrackingDetails))
	for _, detail := range payload.TrackingDetails {
		events = append(events, toTrackingEvent(detail))
	}

	result := domain.TrackingResult{
		InvoiceNo:    payload.InvoiceNo,
		Complete:     payload.Complete,
		CurrentLevel: payload.Level,
		ItemName:     payload.ItemName,
		ReceiverName: payload.ReceiverName,
		SenderName:   payload.SenderName,
		Events:       events,
		FirstEvent:   toEventPointer(payload.FirstDetail),
		LastEvent:    toEventPointer(payload.LastDetail),
		ErrorCode:    payload.Code,
		ErrorMessage: payload.Msg,
	}
	if payload.Estimate != nil {
		result.Estimate = *payload.Estimate
	}

	return result
}

func toEventPointer(detail *trackingDetailPayload) *domain.TrackingEvent {
	if detail == nil {
		return nil
	}

	event := toTrackingEvent(*detail)
	return &event
}

func toTrackingEvent(detail trackingDetailPayload) domain.TrackingEvent {
	return domain.TrackingEvent{
		StageLabel:       detail.Kind,
		Level:            detail.Level,
		ContactName:      detail.ManName,
		ContactPhone:     detail.Telno,
		TimestampRaw:     detail.Time,
		TimestampDisplay: detail.TimeString,
		Location:         detail.Where,
		StatusCode:       detail.Code,
		Remark:           detail.Remark,
	}
}

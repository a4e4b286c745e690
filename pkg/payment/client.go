package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"loja/internal/errs"
)

// Config holds the processor connection details.
type Config struct {
	// BaseURL is the processor API root, e.g. "https://api.stripe.com".
	BaseURL string
	// SecretKey authenticates this service as bearer token.
	SecretKey string
	// Currency is the lowercase ISO code applied to every line item. The
	// store is single-currency.
	Currency string
	// Timeout bounds each processor call. Zero means 10s.
	Timeout time.Duration
}

// Client is an HTTP implementation of Processor against a checkout-session
// style REST API: form-encoded requests, JSON responses.
type Client struct {
	baseURL   string
	secretKey string
	currency  string
	http      *http.Client
}

// NewClient creates a processor client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "brl"
	}
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		currency:  currency,
		http:      &http.Client{Timeout: timeout},
	}
}

// sessionResponse is the processor's wire representation of a session.
type sessionResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

// CreateSession creates a hosted checkout session for the given line items.
func (c *Client) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}
	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", item.Description)
		}
		if item.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.ImageURL)
		}
	}

	return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()))
}

// RetrieveSession fetches the current state of a session.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("checkout session id is empty: %w", errs.ErrNotFound)
	}
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body *strings.Reader) (*Session, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build processor request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Network failure or timeout: the outcome is unknown, not failed.
		return nil, fmt.Errorf("processor unreachable: %v: %w", err, errs.ErrTransient)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("processor session: %w", errs.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("processor returned %d: %w", resp.StatusCode, errs.ErrTransient)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("processor rejected request with status %d", resp.StatusCode)
	}

	var payload sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode processor response: %w", err)
	}
	return &Session{
		ID:            payload.ID,
		URL:           payload.URL,
		PaymentStatus: payload.PaymentStatus,
		Metadata:      payload.Metadata,
	}, nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/evloca/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// TokenProvider supplies the current bearer token. session.State satisfies it.
type TokenProvider interface {
	Token() string
}

// Indicator is a global "loading" signal.
type Indicator interface {
	Show()
	Hide()
}

// Client performs requests against the platform API.
type Client struct {
	baseURL    string
	assetURL   string
	httpClient *http.Client
	tokens     TokenProvider
	loading    Indicator
	limiter    *rate.Limiter
	logger     *log.Logger
	flights    *Flights
}

// ClientOpts configures a [Client].
type ClientOpts struct {
	BaseURL    string
	AssetURL   string
	HTTPClient *http.Client
	Tokens     TokenProvider
	Loading    Indicator
	Logger     *log.Logger
	RateLimit  float64 // requests per second, 0 disables
}

// NewClient creates a Client, defaulting to the local development API.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:4000/api"
	}
	if opts.AssetURL == "" {
		opts.AssetURL = strings.TrimSuffix(strings.TrimRight(opts.BaseURL, "/"), "/api")
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		assetURL:   strings.TrimRight(opts.AssetURL, "/"),
		httpClient: opts.HTTPClient,
		tokens:     opts.Tokens,
		loading:    opts.Loading,
		logger:     opts.Logger,
		flights:    NewFlights(),
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return c
}

// Flights returns the client's single-flight slots.
func (c *Client) Flights() *Flights { return c.flights }

// SetLoading swaps the loading indicator.
func (c *Client) SetLoading(i Indicator) { c.loading = i }

// SetLogger swaps the logger.
func (c *Client) SetLogger(l *log.Logger) { c.logger = l }

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string { return e.Message() }

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// Message is the server-provided message when the body has one, else the raw text.
func (e *APIError) Message() string {
	body := strings.TrimSpace(e.Body)

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal([]byte(body), &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if body != "" {
		return body
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return "Unknown error"
}

// IsAborted reports whether err is a cancellation that callers must ignore.
func IsAborted(err error) bool {
	return errors.Is(err, shared.ErrAborted)
}

// Request sends body to path and returns the raw JSON response, nil for an empty body.
//
// body may be nil, a [*Form], or any JSON-encodable value.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(resp.Body)}
	}

	data := bytes.TrimSpace(resp.Body)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s %s returned non-JSON body", shared.ErrDecode, method, path)
	}
	return json.RawMessage(data), nil
}

// Do is [Client.Request] decoding the response into out. out is left untouched for empty bodies.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	data, err := c.Request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if data == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}
	return nil
}

// APIResponse is an unclassified response, used by raw API access.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Raw sends a request and returns the response whatever its status.
func (c *Client) Raw(ctx context.Context, method, path string, body any) (*APIResponse, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(resp.Body, &data); err == nil {
		resp.IsJSON = true
		resp.JSONData = data
	}
	return resp, nil
}

// send performs the round trip with the loading indicator held for its whole duration.
func (c *Client) send(ctx context.Context, method, path string, body any) (*APIResponse, error) {
	if c.loading != nil {
		c.loading.Show()
		defer c.loading.Hide()
	}

	if err := ctx.Err(); err != nil {
		return nil, c.classify(ctx, err)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.classify(ctx, err)
		}
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if ctx.Err() != nil {
		// A superseded response is discarded even if it arrived in full.
		return nil, c.classify(ctx, ctx.Err())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrTransport, err)
	}

	c.logger.Debug("api response", "method", method, "path", path, "status", resp.StatusCode, "request_id", req.Header.Get("X-Request-ID"))

	return &APIResponse{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var (
		reader      io.Reader
		contentType string
	)

	switch b := body.(type) {
	case nil:
	case *Form:
		buf, ct, err := b.encode()
		if err != nil {
			return nil, err
		}
		reader, contentType = buf, ct
	case json.RawMessage:
		reader, contentType = bytes.NewReader(b), "application/json"
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode body: %v", shared.ErrInvalidInput, err)
		}
		reader, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}
	return req, nil
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// classify maps context and transport failures onto the error taxonomy.
func (c *Client) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return shared.ErrAborted
	}
	return fmt.Errorf("%w: %v", shared.ErrTransport, err)
}

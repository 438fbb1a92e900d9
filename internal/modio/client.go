package modio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jieyouxu/modio-modcheck/internal/model"
)

// maxErrorBodySize bounds how much of an error response body is read when
// decoding the API error envelope.
const maxErrorBodySize = 64 * 1024

// Client performs authenticated requests against the mod.io v1 API.
//
// Design decision: We use a struct holding the http.Client rather than
// passing the client on each call because:
//  1. Token and User-Agent configuration should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with a base URL override
type Client struct {
	// httpClient is the underlying HTTP client.
	httpClient *http.Client

	// baseURL is the resolved API base, e.g. https://u-123.modapi.io/v1.
	baseURL string

	// token is the OAuth2 bearer token sent on every request.
	token string

	// userAgent is the User-Agent header to use for requests.
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
// Tests use this together with WithUserAgent to point at httptest servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a Client for the given user and bearer token.
// host is the API host template; a %d verb, if present, is filled with the
// user ID (the production template is "https://u-%d.modapi.io/v1").
func NewClient(host string, userID int64, token string, opts ...Option) *Client {
	base := host
	if strings.Contains(base, "%d") {
		base = fmt.Sprintf(base, userID)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(base, "/"),
		token:      strings.TrimSpace(token),
		userAgent:  "modio-modcheck/1.0",
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyToken checks the access token by fetching the authenticated user.
// A 401 response yields ErrUnauthorized; callers treat that as fatal and
// abort before any per-mod lookup.
func (c *Client) VerifyToken(ctx context.Context) error {
	var me struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := c.get(ctx, "/me", nil, &me); err != nil {
		return err
	}
	return nil
}

// GetMod fetches a single mod by its numeric ID.
// A 404 response yields ErrModNotFound.
func (c *Client) GetMod(ctx context.Context, gameID, modID int64) (*model.ModRecord, error) {
	var record model.ModRecord
	path := fmt.Sprintf("/games/%d/mods/%d", gameID, modID)
	if err := c.get(ctx, path, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// GetModsByNameID fetches mods matching a name_id slug.
// The query deliberately omits the visible filter so that hidden mods are
// returned and can be classified as hidden rather than appearing deleted.
func (c *Client) GetModsByNameID(ctx context.Context, gameID int64, nameID string) ([]model.ModRecord, error) {
	var envelope struct {
		Data []model.ModRecord `json:"data"`
	}

	query := url.Values{}
	query.Set("name_id", nameID)

	path := fmt.Sprintf("/games/%d/mods", gameID)
	if err := c.get(ctx, path, query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// get performs an authenticated GET request and decodes the JSON response
// into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, c.decodeError(resp))
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrModNotFound, c.decodeError(resp))
	case resp.StatusCode != http.StatusOK:
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// decodeError builds an APIError from a non-2xx response, decoding the
// mod.io error envelope ({"error": {"code": ..., "message": ...}}) when
// possible.
func (c *Client) decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

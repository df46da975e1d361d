package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a gamedex API server.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search runs a query against POST /v1/search.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchPage, error) {
	var page SearchPage
	if err := c.do(ctx, http.MethodPost, "/v1/search", req, &page); err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	return page, nil
}

// GetGame fetches a single game by id.
func (c *Client) GetGame(ctx context.Context, id int64) (Game, error) {
	var g Game
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/games/%d", id), nil, &g); err != nil {
		return Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return g, nil
}

// UpsertGame creates or replaces a game.
func (c *Client) UpsertGame(ctx context.Context, g Game) (Game, error) {
	var stored Game
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/games/%d", g.ID), g, &stored); err != nil {
		return Game{}, fmt.Errorf("upsert game %d: %w", g.ID, err)
	}
	return stored, nil
}

// DeleteGame removes a game.
func (c *Client) DeleteGame(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/games/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete game %d: %w", id, err)
	}
	return nil
}

// Health fetches GET /healthz. The report is returned even when the
// server answers 503; the error is nil in both cases.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return HealthReport{}, err
	}
	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return HealthReport{}, fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()

	var report HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return HealthReport{}, fmt.Errorf("health: decode response: %w", err)
	}
	return report, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

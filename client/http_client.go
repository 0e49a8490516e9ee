package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MovieMatch/internal/recommend"
	"MovieMatch/server"

	json "github.com/goccy/go-json"
)

// NotFoundError carries the server's suggestions for an unknown title.
type NotFoundError struct {
	Title       string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q: %v", e.Title, recommend.ErrTitleNotFound)
}

func (e *NotFoundError) Unwrap() error { return recommend.ErrTitleNotFound }

// HTTPClient queries a running `moviematch serve` instance.
type HTTPClient struct {
	BaseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Recommend fetches ranked recommendations for title. An unknown title yields
// a *NotFoundError.
func (c *HTTPClient) Recommend(ctx context.Context, title string) ([]recommend.Result, error) {
	endpoint := c.BaseURL + "/v1/recommendations?title=" + url.QueryEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body server.RecommendationsResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return body.Results, nil
	case http.StatusNotFound:
		var body server.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode error response: %w", err)
		}
		return nil, &NotFoundError{Title: title, Suggestions: body.Suggestions}
	default:
		var body server.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error == "" {
			body.Error = resp.Status
		}
		return nil, errors.New("server error: " + body.Error)
	}
}

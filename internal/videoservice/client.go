// Package videoservice talks to the short-video rendering service that
// produces the clips requested through the automation workflow.
package videoservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contentportal/internal/infra"
)

// DefaultBaseURL is used when no service URL is configured.
const DefaultBaseURL = "http://localhost:3123"

// ErrMissingVideoID is returned when a call is made without a video identifier.
var ErrMissingVideoID = errors.New("videoservice: video id is required")

// TransportError reports an unreachable service or a non-success HTTP status.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("videoservice: %s returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("videoservice: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Options configures the rendering service client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client queries render status and streams finished videos.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Status is the render state reported by the service. Unknown fields are kept
// in Raw so callers can forward the whole document.
type Status struct {
	Status string
	Raw    map[string]any
}

// Video is an open stream of a rendered clip. Callers must close Body.
type Video struct {
	Body          io.ReadCloser
	ContentLength int64
}

// NewClient constructs a client with defaults applied.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("videoservice: invalid base url: %w", err)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}, nil
}

// Status fetches the render state of videoID.
func (c *Client) Status(ctx context.Context, videoID string) (*Status, error) {
	resp, err := c.get(ctx, "status", videoID, "/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("videoservice: decode status: %w", err)
	}
	status, _ := raw["status"].(string)
	c.logger.Debug().Str("video_id", videoID).Str("status", status).Msg("videoservice: status")
	return &Status{Status: status, Raw: raw}, nil
}

// Download opens the rendered file of videoID.
func (c *Client) Download(ctx context.Context, videoID string) (*Video, error) {
	resp, err := c.get(ctx, "download", videoID, "")
	if err != nil {
		return nil, err
	}
	return &Video{Body: resp.Body, ContentLength: resp.ContentLength}, nil
}

func (c *Client) get(ctx context.Context, op, videoID, suffix string) (*http.Response, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, ErrMissingVideoID
	}
	endpoint := c.baseURL + "/api/short-video/" + url.PathEscape(videoID) + suffix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("videoservice: build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

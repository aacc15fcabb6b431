package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contentportal/internal/domain"
	"contentportal/internal/infra"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultPollTimeout  = 60 * time.Second

	// DefaultRequestTimeout bounds each webhook exchange. It stays below the
	// HTTP server write timeout so a hung workflow surfaces as a 502 instead of
	// a dropped connection.
	DefaultRequestTimeout = 110 * time.Second
)

// Options configures the automation webhook client. RequestTimeout applies
// only when HTTPClient is nil.
type Options struct {
	WebhookURL     string
	PollInterval   time.Duration
	PollTimeout    time.Duration
	RequestTimeout time.Duration
	HTTPClient     *http.Client
	Logger         *infra.Logger
}

// Client talks to the automation webhook: it submits a brief and, when the
// workflow answers asynchronously, polls until the task completes.
type Client struct {
	webhookURL   string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
	logger       *infra.Logger
}

// Scene is one narrated segment of a short video.
type Scene struct {
	Text        string   `json:"text"`
	SearchTerms []string `json:"searchTerms"`
}

// VideoConfig holds render options forwarded to the video workflow.
type VideoConfig struct {
	PaddingBack            int    `json:"paddingBack"`
	Music                  string `json:"music"`
	Voice                  string `json:"voice"`
	CaptionPosition        string `json:"captionPosition"`
	CaptionBackgroundColor string `json:"captionBackgroundColor"`
	Orientation            string `json:"orientation"`
}

// Request is the body posted to the webhook.
type Request struct {
	Type   domain.ContentKind `json:"type"`
	Prompt string             `json:"prompt"`
	Scenes []Scene            `json:"scenes,omitempty"`
	Config *VideoConfig       `json:"config,omitempty"`
}

// Outcome distinguishes a finished result from a video render handoff.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeVideo     Outcome = "video"
)

// Response is the normalized answer of one automation request.
type Response struct {
	Outcome Outcome        `json:"-"`
	Result  map[string]any `json:"result"`
	TaskID  string         `json:"taskId,omitempty"`
}

// NewClient constructs a client with defaults applied. A missing webhook URL is
// accepted here and reported on each Trigger call.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		requestTimeout := opts.RequestTimeout
		if requestTimeout <= 0 {
			requestTimeout = DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := opts.PollTimeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	webhook := strings.TrimSpace(opts.WebhookURL)
	if webhook != "" {
		if _, err := url.Parse(webhook); err != nil {
			return nil, fmt.Errorf("automation: invalid webhook url: %w", err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Client{
		webhookURL:   webhook,
		pollInterval: interval,
		pollTimeout:  timeout,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool {
	return c.webhookURL != ""
}

// Trigger submits req and returns the normalized result. Pending tasks are
// polled sequentially every PollInterval until they complete, fail, or the
// PollTimeout elapses (ErrTimeout). Video render handoffs are returned as-is
// for the caller to track.
func (c *Client) Trigger(ctx context.Context, req Request) (*Response, error) {
	if !c.Configured() {
		return nil, ErrMissingWebhookURL
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("automation: encode request: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, c.webhookURL, body)
	if err != nil {
		return nil, err
	}
	data := UnwrapEnvelope(raw)
	c.logger.Debug().Str("type", string(req.Type)).Interface("payload", data).Msg("automation: initial response")

	env, ok := asEnvelope(data)
	if !ok {
		return completed(data, "")
	}
	switch env.Status {
	case statusCompleted:
		return completed(env.payload(), env.TaskID)
	case statusReady, statusProcessing:
		result := map[string]any{domain.ResultKeyVideoStatus: env.Status}
		if env.VideoID != nil {
			result[domain.ResultKeyVideoID] = env.VideoID
		}
		return &Response{Outcome: OutcomeVideo, Result: result, TaskID: env.TaskID}, nil
	case statusError:
		return nil, &RemoteError{Message: env.errorMessage("automation error")}
	}
	if env.TaskID == "" {
		return nil, ErrNoTaskID
	}
	return c.poll(ctx, env.TaskID)
}

func (c *Client) poll(ctx context.Context, taskID string) (*Response, error) {
	pollURL, err := url.Parse(c.webhookURL)
	if err != nil {
		return nil, fmt.Errorf("automation: invalid webhook url: %w", err)
	}
	q := pollURL.Query()
	q.Set("taskId", taskID)
	pollURL.RawQuery = q.Encode()

	deadline := time.Now().Add(c.pollTimeout)
	for attempt := 1; time.Now().Before(deadline); attempt++ {
		if err := sleep(ctx, c.pollInterval); err != nil {
			return nil, err
		}
		if !time.Now().Before(deadline) {
			break
		}
		raw, err := c.do(ctx, http.MethodGet, pollURL.String(), nil)
		if err != nil {
			return nil, err
		}
		data := UnwrapEnvelope(raw)
		c.logger.Debug().Str("task_id", taskID).Int("attempt", attempt).Msg("automation: poll response")

		env, ok := asEnvelope(data)
		if !ok {
			return completed(data, taskID)
		}
		switch env.Status {
		case statusCompleted:
			return completed(env.payload(), firstNonEmpty(env.TaskID, taskID))
		case statusError:
			return nil, &RemoteError{Message: env.errorMessage("automation error")}
		}
	}
	c.logger.Warn().Str("task_id", taskID).Dur("timeout", c.pollTimeout).Msg("automation: poll budget exhausted")
	return nil, ErrTimeout
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (any, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("automation: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Cache-Control", "no-store")

	op := "webhook"
	if method == http.MethodGet {
		op = "status poll"
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	return decodeBody(resp)
}

func completed(payload any, taskID string) (*Response, error) {
	result, err := Normalize(ResultFromPayload(payload))
	if err != nil {
		return nil, err
	}
	return &Response{Outcome: OutcomeCompleted, Result: result, TaskID: taskID}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnavailable marks transport-level failures: network errors, non-2xx
// statuses and unreadable or malformed bodies. An application-level rejection
// comes back as a Reply with Success false, not as an error.
var ErrUnavailable = errors.New("chat service unavailable")

// Reply is the application-level outcome of a chat exchange.
type Reply struct {
	Success bool   `json:"success"`
	Text    string `json:"response"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Client performs the round trips to the conversational-commerce backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
}

func NewClient(baseURL string, log *slog.Logger, tracer trace.Tracer, meter metric.Meter) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
		tracer:     tracer,
		meter:      meter,
	}
}

// SendMessage posts the user's text and session id to the chat endpoint.
func (c *Client) SendMessage(ctx context.Context, text, sessionID string) (Reply, error) {
	ctx, span := c.tracer.Start(ctx, "chat_send")
	defer span.End()

	start := time.Now()

	jsonData, err := json.Marshal(chatRequest{Message: text, SessionID: sessionID})
	if err != nil {
		return Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("chat request failed", "error", err)
		return Reply{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	c.recordDuration(ctx, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("chat request rejected", "status", resp.Status)
		return Reply{}, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return Reply{}, fmt.Errorf("%w: failed to unmarshal response: %v", ErrUnavailable, err)
	}

	c.log.Info("chat reply received", "session_id", sessionID, "success", reply.Success)
	return reply, nil
}

// Reset asks the backend to discard its side of the conversation. Success is
// signaled purely by HTTP status.
func (c *Client) Reset(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "chat_reset")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reset", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("reset request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("reset request rejected", "status", resp.Status)
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	c.log.Info("conversation reset acknowledged")
	return nil
}

func (c *Client) recordDuration(ctx context.Context, d time.Duration) {
	histogram, err := c.meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err == nil {
		histogram.Record(ctx, float64(d.Milliseconds()))
	}
}

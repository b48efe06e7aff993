// Package chat orchestrates the conversation: user input goes through the
// transport, replies are inspected for payment instructions, and every
// outcome lands in the transcript as a rendered message.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/PedroMGGDev/papelaria-digital/internal/payment"
	"github.com/PedroMGGDev/papelaria-digital/internal/session"
	"github.com/PedroMGGDev/papelaria-digital/internal/transport"
)

// Transport is the outbound side of the conversation.
type Transport interface {
	SendMessage(ctx context.Context, text, sessionID string) (transport.Reply, error)
	Reset(ctx context.Context) error
}

// Renderer receives transcript changes and payment summaries. Implementations
// must tolerate being called from the controller's calling goroutine.
type Renderer interface {
	Render(msg session.Message)
	Clear()
	ShowPaymentSummary(info payment.Info)
}

// Scheduler defers a function by a duration. Abstracted so deferred UI
// actions are deterministic in tests.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) After(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// NewScheduler returns a Scheduler backed by the runtime timer.
func NewScheduler() Scheduler { return timerScheduler{} }

// Controller owns the loading state machine: Idle or Sending, with at most
// one request in flight. Submissions and resets while Sending are dropped
// silently. Every failure path returns to Idle and leaves the transcript
// consistent.
type Controller struct {
	transport Transport
	sessions  *session.Manager
	renderer  Renderer
	scheduler Scheduler
	log       *slog.Logger

	mu         sync.Mutex
	sending    bool
	transcript []session.Message
}

func NewController(t Transport, sm *session.Manager, r Renderer, sch Scheduler, log *slog.Logger) *Controller {
	return &Controller{
		transport: t,
		sessions:  sm,
		renderer:  r,
		scheduler: sch,
		log:       log,
	}
}

// Start appends the fixed greeting that opens every conversation.
func (c *Controller) Start() {
	c.appendMessage(session.SenderBot, msgGreeting)
}

// Sending reports whether a request is in flight.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Transcript returns a copy of the message sequence in display order.
func (c *Controller) Transcript() []session.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]session.Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Submit runs one request/response exchange and blocks until the reply (or a
// fallback) has been appended; callers drive it from their own goroutine or
// command. Empty input and input while a send is in flight are no-ops.
func (c *Controller) Submit(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		c.log.Debug("submission dropped, send in flight")
		return
	}
	c.sending = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	c.appendMessage(session.SenderUser, text)

	reply, err := c.transport.SendMessage(ctx, text, c.sessions.GetOrCreate())
	switch {
	case err != nil:
		c.log.Error("failed to send message", "error", err)
		c.appendMessage(session.SenderBot, msgConnFailure)
	case !reply.Success:
		c.log.Warn("backend reported failure")
		c.appendMessage(session.SenderBot, msgAppFailure)
	default:
		c.appendMessage(session.SenderBot, reply.Text)
		if payment.Triggered(reply.Text) {
			c.renderer.ShowPaymentSummary(payment.Extract(reply.Text))
		}
	}
}

// Reset discards the conversation on both sides: new session id, cleared
// transcript, fresh greeting after a short delay. A no-op while a send is in
// flight. On failure the session and transcript are left unchanged.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		c.log.Debug("reset dropped, send in flight")
		return
	}
	c.mu.Unlock()

	if err := c.transport.Reset(ctx); err != nil {
		c.log.Error("failed to reset conversation", "error", err)
		c.appendMessage(session.SenderBot, msgResetFailure)
		return
	}

	id := c.sessions.Reset()

	c.mu.Lock()
	c.transcript = nil
	c.mu.Unlock()
	c.renderer.Clear()
	c.log.Info("conversation reset", "session_id", id)

	c.scheduler.After(resetGreetingDelay, func() {
		c.appendMessage(session.SenderBot, msgResetGreeting)
	})
}

// ReportUnexpected surfaces a failure nothing else caught as a bot message.
// Suppressed while a send is in flight: that path produces its own fallback.
func (c *Controller) ReportUnexpected() {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.appendMessage(session.SenderBot, MsgUnexpected)
}

func (c *Controller) appendMessage(sender session.Sender, body string) {
	msg := session.Message{Sender: sender, Body: body, RenderedAt: time.Now()}
	c.mu.Lock()
	c.transcript = append(c.transcript, msg)
	c.mu.Unlock()
	c.renderer.Render(msg)
}

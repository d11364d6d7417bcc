package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ChannelWhatsApp is the only dispatch channel. The legacy SMS path is gone.
const ChannelWhatsApp = "whatsapp"

// State of the dispatch controller. Terminal states return to Idle on the
// next user-initiated attempt.
type State int

const (
	StateIdle State = iota
	StateSending
	StatePreviewed
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StatePreviewed:
		return "previewed"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SendPayload is built exactly once per attempt and immutable afterwards.
// Absent ETA ends are nil, not empty strings, and must stay nil across the
// wire.
type SendPayload struct {
	Area     string      `json:"area"`
	Channel  string      `json:"channel"`
	Message  string      `json:"message"`
	DryRun   bool        `json:"dry_run"`
	MsgType  MessageKind `json:"msg_type"`
	ETAStart *string     `json:"eta_start"`
	ETAEnd   *string     `json:"eta_end"`
}

// SendResult is what a Transport reports back. UnitPrice and Cost are set
// only when the transport is authoritative for them.
type SendResult struct {
	DryRun    bool
	Count     int
	Sent      int
	Failed    int
	UnitPrice *float64
	Cost      *float64
}

// Transport performs (or simulates, under dry run) the actual send.
type Transport interface {
	Send(ctx context.Context, payload SendPayload) (*SendResult, error)
}

// Severity is the visual weight of an outcome. A live send with failures
// completes at warn, not success and not error.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

type OutcomeKind string

const (
	OutcomePreview OutcomeKind = "preview"
	OutcomeResult  OutcomeKind = "result"
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the user-facing result of one attempt. Each new attempt
// supersedes the previous one; no history is kept here.
type Outcome struct {
	Kind           OutcomeKind
	Severity       Severity
	RecipientCount int
	Sent           int
	Failed         int
	UnitPrice      float64
	Cost           float64
	Reason         string
}

// ErrBusy is returned while an attempt is outstanding; the caller must wait
// for a terminal state before trying again.
var ErrBusy = errors.New("send already in progress")

const reasonMissingInput = "missing area or message"

// Controller sequences send attempts through
// Idle → Sending → {Previewed, Completed, Failed}.
type Controller struct {
	mu        sync.Mutex
	state     State
	pricing   Snapshot
	transport Transport
	timeout   time.Duration
	logger    *zap.Logger
}

func NewController(pricing Snapshot, transport Transport, timeout time.Duration, logger *zap.Logger) *Controller {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		state:     StateIdle,
		pricing:   pricing,
		transport: transport,
		timeout:   timeout,
		logger:    logger,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Send runs one attempt. A validation failure never reaches the transport
// and leaves the state unchanged. ErrBusy is returned while a previous
// attempt is still outstanding.
func (c *Controller) Send(ctx context.Context, area, msg string, dryRun bool, kind MessageKind, window TimeWindow) (Outcome, error) {
	msg = strings.TrimSpace(msg)

	c.mu.Lock()
	if c.state == StateSending {
		c.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	if area == "" || msg == "" {
		c.mu.Unlock()
		return Outcome{Kind: OutcomeFailure, Severity: SeverityError, Reason: reasonMissingInput}, nil
	}
	c.state = StateSending
	c.mu.Unlock()

	payload := SendPayload{
		Area:     area,
		Channel:  ChannelWhatsApp,
		Message:  msg,
		DryRun:   dryRun,
		MsgType:  kind,
		ETAStart: clockPtr(window.Start),
		ETAEnd:   clockPtr(window.End),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.transport.Send(ctx, payload)
	if err != nil {
		c.setState(StateFailed)
		reason := err.Error()
		if reason == "" {
			reason = "request failed"
		}
		c.logger.Error("dispatch failed", zap.String("area", area), zap.String("reason", reason))
		return Outcome{Kind: OutcomeFailure, Severity: SeverityError, Reason: reason}, nil
	}

	unit, perr := c.pricing.UnitPrice(c.pricing.DefaultCategory)
	if perr != nil {
		c.setState(StateFailed)
		return Outcome{Kind: OutcomeFailure, Severity: SeverityError, Reason: perr.Error()}, nil
	}
	if res.UnitPrice != nil {
		unit = *res.UnitPrice
	}

	if res.DryRun {
		c.setState(StatePreviewed)
		cost := Estimate(unit, res.Count)
		c.logger.Info("dispatch previewed",
			zap.String("area", area),
			zap.Int("count", res.Count),
			zap.Float64("estimated_cost", cost))
		return Outcome{
			Kind:           OutcomePreview,
			Severity:       SeverityInfo,
			RecipientCount: res.Count,
			UnitPrice:      unit,
			Cost:           cost,
		}, nil
	}

	cost := Estimate(unit, res.Sent)
	if res.Cost != nil {
		cost = *res.Cost
	}
	severity := SeveritySuccess
	if res.Failed > 0 {
		severity = SeverityWarn
	}
	c.setState(StateCompleted)
	c.logger.Info("dispatch completed",
		zap.String("area", area),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
		zap.Float64("cost", cost))
	return Outcome{
		Kind:           OutcomeResult,
		Severity:       severity,
		RecipientCount: res.Count,
		Sent:           res.Sent,
		Failed:         res.Failed,
		UnitPrice:      unit,
		Cost:           cost,
	}, nil
}

func clockPtr(t *ClockTime) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

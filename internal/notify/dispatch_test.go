package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, payload SendPayload) (*SendResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SendResult), args.Error(1)
}

func newTestController(transport Transport) *Controller {
	return NewController(testSnapshot(), transport, 5*time.Second, nil)
}

func TestSendRejectsMissingInput(t *testing.T) {
	transport := &MockTransport{}
	c := newTestController(transport)

	outcome, err := c.Send(context.Background(), "", "hello", false, KindOutage, TimeWindow{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "missing area or message", outcome.Reason)
	assert.Equal(t, StateIdle, c.State())

	// Whitespace-only message is empty after trimming.
	outcome, err = c.Send(context.Background(), "Ward 5", "   \n", false, KindOutage, TimeWindow{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailure, outcome.Kind)

	// The transport is never invoked on a validation failure.
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendDryRunPreview(t *testing.T) {
	// Scenario: 3 recipients at 0.50/utility previews a cost of 1.50.
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, mock.MatchedBy(func(p SendPayload) bool {
		return p.DryRun && p.Area == "Ward 5" && p.Channel == ChannelWhatsApp
	})).Return(&SendResult{DryRun: true, Count: 3}, nil)

	c := newTestController(transport)
	outcome, err := c.Send(context.Background(), "Ward 5", "outage notice", true, KindOutage, TimeWindow{})
	require.NoError(t, err)

	assert.Equal(t, OutcomePreview, outcome.Kind)
	assert.Equal(t, SeverityInfo, outcome.Severity)
	assert.Equal(t, 3, outcome.RecipientCount)
	assert.Equal(t, 0.50, outcome.UnitPrice)
	assert.Equal(t, 1.50, outcome.Cost)
	assert.Equal(t, StatePreviewed, c.State())
}

func TestSendPrefersTransportUnitPrice(t *testing.T) {
	authoritative := 0.75
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).
		Return(&SendResult{DryRun: true, Count: 2, UnitPrice: &authoritative}, nil)

	c := newTestController(transport)
	outcome, err := c.Send(context.Background(), "Ward 5", "notice", true, KindOutage, TimeWindow{})
	require.NoError(t, err)
	assert.Equal(t, 0.75, outcome.UnitPrice)
	assert.Equal(t, 1.50, outcome.Cost)
}

func TestSendLivePartialFailureIsWarn(t *testing.T) {
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).
		Return(&SendResult{Count: 3, Sent: 2, Failed: 1}, nil)

	c := newTestController(transport)
	outcome, err := c.Send(context.Background(), "Ward 5", "notice", false, KindOutage, TimeWindow{})
	require.NoError(t, err)

	// Partial failure still completes, at warn severity, with cost from
	// the sent count when the transport reports no authoritative cost.
	assert.Equal(t, OutcomeResult, outcome.Kind)
	assert.Equal(t, SeverityWarn, outcome.Severity)
	assert.Equal(t, 2, outcome.Sent)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, 1.00, outcome.Cost)
	assert.Equal(t, StateCompleted, c.State())
}

func TestSendLiveCleanCompletion(t *testing.T) {
	cost := 1.23
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).
		Return(&SendResult{Count: 3, Sent: 3, Failed: 0, Cost: &cost}, nil)

	c := newTestController(transport)
	outcome, err := c.Send(context.Background(), "Ward 5", "notice", false, KindRestoration, TimeWindow{})
	require.NoError(t, err)

	assert.Equal(t, SeveritySuccess, outcome.Severity)
	// Authoritative transport cost wins over the local formula.
	assert.Equal(t, 1.23, outcome.Cost)
}

func TestSendTransportErrorSurfacedVerbatim(t *testing.T) {
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).
		Return(nil, errors.New("API error: 500 - upstream down"))

	c := newTestController(transport)
	outcome, err := c.Send(context.Background(), "Ward 5", "notice", false, KindOutage, TimeWindow{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "API error: 500 - upstream down", outcome.Reason)
	assert.Equal(t, StateFailed, c.State())
}

func TestSendPayloadETAFields(t *testing.T) {
	start := ClockTime{Hour: 22, Minute: 0}
	end := ClockTime{Hour: 1, Minute: 0}

	var captured SendPayload
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(SendPayload) }).
		Return(&SendResult{DryRun: true, Count: 1}, nil)

	c := newTestController(transport)
	_, err := c.Send(context.Background(), "Ward 5", "notice", true, KindOutage,
		TimeWindow{Start: &start, End: &end})
	require.NoError(t, err)
	require.NotNil(t, captured.ETAStart)
	require.NotNil(t, captured.ETAEnd)
	assert.Equal(t, "22:00", *captured.ETAStart)
	assert.Equal(t, "01:00", *captured.ETAEnd)

	// Empty window travels as nil, not empty strings.
	_, err = c.Send(context.Background(), "Ward 5", "notice", true, KindOutage, TimeWindow{})
	require.NoError(t, err)
	assert.Nil(t, captured.ETAStart)
	assert.Nil(t, captured.ETAEnd)
}

func TestSendReentrancyGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	var startedOnce sync.Once
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			startedOnce.Do(func() { close(started) })
			<-release
		}).
		Return(&SendResult{DryRun: true, Count: 1}, nil)

	c := newTestController(transport)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.Send(context.Background(), "Ward 5", "notice", true, KindOutage, TimeWindow{})
		assert.NoError(t, err)
	}()

	<-started
	_, err := c.Send(context.Background(), "Ward 5", "notice", true, KindOutage, TimeWindow{})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()

	// Terminal state: the next attempt is accepted again.
	assert.Equal(t, StatePreviewed, c.State())
	_, err = c.Send(context.Background(), "Ward 5", "notice", true, KindOutage, TimeWindow{})
	assert.NoError(t, err)
}

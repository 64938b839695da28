package intake

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu     sync.Mutex
	calls  []Submission
	result *SubmitResult
	err    error
}

func (f *fakeSubmitter) Submit(_ context.Context, s Submission) (*SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
	return f.result, f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeTimer struct {
	delay   time.Duration
	fire    func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) schedule(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, fire: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) last() *fakeTimer {
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

func newTestController(sub Submitter, opts ...Option) (*Controller, *fakeClock) {
	clock := &fakeClock{}
	opts = append([]Option{WithScheduler(clock.schedule)}, opts...)
	return NewController(sub, opts...), clock
}

// toPhoneStep fills steps one and two with valid input.
func toPhoneStep(t *testing.T, c *Controller) {
	t.Helper()
	c.SetName("Jane")
	require.Equal(t, OutcomeAdvanced, c.Advance(context.Background()))
	c.SetEmail("jane@example.com")
	require.Equal(t, OutcomeAdvanced, c.Advance(context.Background()))
	require.Equal(t, StepPhone, c.State().Step)
}

func TestController_StartsOnNameStep(t *testing.T) {
	c, _ := newTestController(&fakeSubmitter{})

	state := c.State()
	assert.Equal(t, StepName, state.Step)
	assert.Equal(t, MessageNone, state.Message.Kind)
}

func TestController_NameStep(t *testing.T) {
	sub := &fakeSubmitter{}
	c, _ := newTestController(sub)

	t.Run("empty name stays on step one", func(t *testing.T) {
		c.SetName("   ")
		assert.Equal(t, OutcomeInvalid, c.Advance(context.Background()))

		state := c.State()
		assert.Equal(t, StepName, state.Step)
		assert.Equal(t, Message{Text: MsgNameRequired, Kind: MessageError}, state.Message)
	})

	t.Run("name advances and clears the message", func(t *testing.T) {
		c.SetName("Jane")
		assert.Equal(t, OutcomeAdvanced, c.Advance(context.Background()))

		state := c.State()
		assert.Equal(t, StepEmail, state.Step)
		assert.Equal(t, MessageNone, state.Message.Kind)
	})

	assert.Zero(t, sub.count())
}

func TestController_EmailStep(t *testing.T) {
	sub := &fakeSubmitter{}
	c, _ := newTestController(sub)
	c.SetName("Jane")
	c.Advance(context.Background())

	c.SetEmail("not-an-email")
	assert.Equal(t, OutcomeInvalid, c.Advance(context.Background()))
	assert.Equal(t, StepEmail, c.State().Step)
	assert.Equal(t, MsgInvalidEmail, c.State().Message.Text)

	c.SetEmail("jane@example.com")
	assert.Equal(t, OutcomeAdvanced, c.Advance(context.Background()))
	assert.Equal(t, StepPhone, c.State().Step)
	assert.Zero(t, sub.count())
}

func TestController_PhoneStepTooShort(t *testing.T) {
	sub := &fakeSubmitter{}
	c, _ := newTestController(sub)
	toPhoneStep(t, c)

	c.SetPhoneNumber("123")
	assert.Equal(t, OutcomeInvalid, c.Advance(context.Background()))

	state := c.State()
	assert.Equal(t, StepPhone, state.Step)
	assert.Equal(t, Message{Text: MsgInvalidPhone, Kind: MessageError}, state.Message)
	assert.Zero(t, sub.count())
}

func TestController_SubmitSuccess(t *testing.T) {
	sub := &fakeSubmitter{result: &SubmitResult{Message: "You're in!"}}
	celebrated := 0
	c, clock := newTestController(sub, WithCelebrate(func() { celebrated++ }))
	toPhoneStep(t, c)

	c.SetPhoneNumber("9876543210")
	assert.Equal(t, OutcomeJoined, c.Advance(context.Background()))

	require.Equal(t, 1, sub.count())
	assert.Equal(t, Submission{Name: "Jane", Email: "jane@example.com", PhoneNumber: "9876543210"}, sub.calls[0])
	assert.Equal(t, 1, celebrated)

	state := c.State()
	assert.Equal(t, Message{Text: "You're in!", Kind: MessageSuccess}, state.Message)
	assert.Equal(t, StepPhone, state.Step)

	timer := clock.last()
	require.NotNil(t, timer)
	assert.Equal(t, DefaultResetDelay, timer.delay)

	timer.fire()
	assert.Equal(t, NewFormState(), c.State())
}

func TestController_SubmitSuccessBlankMessageFallsBack(t *testing.T) {
	sub := &fakeSubmitter{result: &SubmitResult{Message: " "}}
	c, _ := newTestController(sub)
	toPhoneStep(t, c)

	c.SetPhoneNumber("9876543210")
	c.Advance(context.Background())

	assert.Equal(t, MsgJoinedFallback, c.State().Message.Text)
}

func TestController_SubmitRejected(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "server text shown", text: "This email address is already on the waitlist.", want: "This email address is already on the waitlist."},
		{name: "fallback when empty", text: "", want: MsgRejectFallback},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sub := &fakeSubmitter{err: &SubmitError{StatusCode: 409, Text: tc.text}}
			c, clock := newTestController(sub)
			toPhoneStep(t, c)

			c.SetPhoneNumber("9876543210")
			assert.Equal(t, OutcomeRejected, c.Advance(context.Background()))

			state := c.State()
			assert.Equal(t, StepPhone, state.Step)
			assert.Equal(t, Message{Text: tc.want, Kind: MessageError}, state.Message)
			assert.Equal(t, "9876543210", state.PhoneNumber)
			assert.Empty(t, clock.timers)
		})
	}
}

func TestController_SubmitTransportFailure(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("connection refused")}
	c, _ := newTestController(sub)
	toPhoneStep(t, c)

	c.SetPhoneNumber("9876543210")
	assert.Equal(t, OutcomeFailed, c.Advance(context.Background()))
	assert.Equal(t, Message{Text: MsgSubmitFailed, Kind: MessageError}, c.State().Message)

	sub.err = nil
	sub.result = &SubmitResult{}
	assert.Equal(t, OutcomeJoined, c.Advance(context.Background()))
	assert.Equal(t, 2, sub.count())
}

func TestController_ResetCancelsPendingTimer(t *testing.T) {
	sub := &fakeSubmitter{result: &SubmitResult{}}
	c, clock := newTestController(sub)
	toPhoneStep(t, c)
	c.SetPhoneNumber("9876543210")
	c.Advance(context.Background())

	timer := clock.last()
	c.Reset()
	assert.True(t, timer.stopped)
	assert.Equal(t, NewFormState(), c.State())

	// A late firing of the cancelled timer must not clobber new input.
	c.SetName("Ann")
	timer.fire()
	assert.Equal(t, "Ann", c.State().Name)
}

func TestController_SecondSuccessReplacesPendingReset(t *testing.T) {
	sub := &fakeSubmitter{result: &SubmitResult{}}
	c, clock := newTestController(sub)
	toPhoneStep(t, c)
	c.SetPhoneNumber("9876543210")

	c.Advance(context.Background())
	first := clock.last()
	c.Advance(context.Background())
	second := clock.last()

	require.Len(t, clock.timers, 2)
	assert.True(t, first.stopped)
	assert.False(t, second.stopped)

	first.fire()
	assert.Equal(t, StepPhone, c.State().Step)
	second.fire()
	assert.Equal(t, StepName, c.State().Step)
}

func TestController_ManualReset(t *testing.T) {
	sub := &fakeSubmitter{result: &SubmitResult{}}
	c := NewController(sub, WithManualReset(), WithResetDelay(time.Second))
	toPhoneStep(t, c)
	c.SetPhoneNumber("9876543210")

	assert.Equal(t, OutcomeJoined, c.Advance(context.Background()))
	assert.Equal(t, time.Second, c.ResetDelay())
	assert.Equal(t, MessageSuccess, c.State().Message.Kind)

	c.Reset()
	assert.Equal(t, StepName, c.State().Step)
}

func TestController_RealTimerResets(t *testing.T) {
	sub := &fakeSubmitter{result: &SubmitResult{}}
	c := NewController(sub, WithResetDelay(10*time.Millisecond))
	toPhoneStep(t, c)
	c.SetPhoneNumber("9876543210")
	c.Advance(context.Background())

	assert.Eventually(t, func() bool {
		return c.State().Step == StepName
	}, time.Second, 5*time.Millisecond)
}

func TestController_WithStateAndSetCurrent(t *testing.T) {
	c, _ := newTestController(&fakeSubmitter{}, WithState(FormState{Step: StepEmail, Name: "Jane"}))

	c.SetCurrent("jane@example.com")
	state := c.State()
	assert.Equal(t, "jane@example.com", state.Email)
	assert.Equal(t, "jane@example.com", state.Current())

	bad, _ := newTestController(&fakeSubmitter{}, WithState(FormState{Step: Step(9)}))
	assert.Equal(t, StepName, bad.State().Step)
}

func TestController_NoSubmitterFails(t *testing.T) {
	c, _ := newTestController(nil)
	toPhoneStep(t, c)
	c.SetPhoneNumber("9876543210")

	assert.Equal(t, OutcomeFailed, c.Advance(context.Background()))
}

func TestController_AdvanceWhileSubmittingIsBusy(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	sub := SubmitterFunc(func(ctx context.Context, s Submission) (*SubmitResult, error) {
		calls++
		close(entered)
		<-release
		return &SubmitResult{Message: "ok"}, nil
	})

	c, _ := newTestController(sub)
	toPhoneStep(t, c)
	c.SetPhoneNumber("9876543210")

	done := make(chan Outcome, 1)
	go func() { done <- c.Advance(context.Background()) }()
	<-entered

	before := c.State()
	assert.Equal(t, OutcomeBusy, c.Advance(context.Background()))
	assert.Equal(t, before, c.State())
	assert.Equal(t, "busy", OutcomeBusy.String())

	close(release)
	assert.Equal(t, OutcomeJoined, <-done)
	assert.Equal(t, 1, calls)
}

package intake

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// DefaultResetDelay is how long the success banner stays up before the form
// starts over.
const DefaultResetDelay = 5 * time.Second

// Submission is the payload sent once all three steps validate.
type Submission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type SubmitResult struct {
	Message string
}

// SubmitError means the endpoint answered and refused the submission. Text is
// the endpoint's own error text and may be empty.
type SubmitError struct {
	StatusCode int
	Text       string
}

func (e *SubmitError) Error() string {
	if e.Text == "" {
		return MsgRejectFallback
	}
	return e.Text
}

// Submitter delivers a Submission. Any error that is not a *SubmitError is
// treated as a transport or decoding failure.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (*SubmitResult, error)
}

type SubmitterFunc func(ctx context.Context, s Submission) (*SubmitResult, error)

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) (*SubmitResult, error) {
	return f(ctx, s)
}

// Timer is the part of *time.Timer the controller needs.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Controller)

// WithCelebrate sets the hook run after a successful submission.
func WithCelebrate(fn func()) Option {
	return func(c *Controller) { c.celebrate = fn }
}

func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) { c.resetDelay = d }
}

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.schedule = s }
}

// WithManualReset disables the reset timer. The caller is expected to call
// Reset itself once ResetDelay has passed.
func WithManualReset() Option {
	return func(c *Controller) { c.schedule = nil }
}

// WithState starts the controller from a previously captured state, for
// surfaces that keep the form between stateless requests.
func WithState(s FormState) Option {
	return func(c *Controller) {
		if !s.Step.Valid() {
			s.Step = StepName
		}
		c.state = s
	}
}

// Controller drives the three-step intake wizard. It is safe for concurrent
// use; the reset timer fires on its own goroutine.
type Controller struct {
	mu         sync.Mutex
	state      FormState
	submitter  Submitter
	celebrate  func()
	resetDelay time.Duration
	schedule   Scheduler
	pending    Timer
	inFlight   bool
}

func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		state:      NewFormState(),
		submitter:  submitter,
		celebrate:  func() {},
		resetDelay: DefaultResetDelay,
		schedule:   afterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.celebrate == nil {
		c.celebrate = func() {}
	}
	return c
}

func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) ResetDelay() time.Duration {
	return c.resetDelay
}

func (c *Controller) SetName(v string) {
	c.mu.Lock()
	c.state.Name = v
	c.mu.Unlock()
}

func (c *Controller) SetEmail(v string) {
	c.mu.Lock()
	c.state.Email = v
	c.mu.Unlock()
}

func (c *Controller) SetPhoneNumber(v string) {
	c.mu.Lock()
	c.state.PhoneNumber = v
	c.mu.Unlock()
}

// SetCurrent sets the field belonging to the current step.
func (c *Controller) SetCurrent(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state.Step {
	case StepEmail:
		c.state.Email = v
	case StepPhone:
		c.state.PhoneNumber = v
	default:
		c.state.Name = v
	}
}

// Reset returns to step one with every field and the message cleared, and
// cancels a pending scheduled reset.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.state = NewFormState()
}

// Advance validates the current step and moves forward. On the last step it
// sends exactly one submission. The message is cleared at the start of every
// attempt. While a submission is in flight Advance returns OutcomeBusy and
// leaves the state alone.
func (c *Controller) Advance(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return OutcomeBusy
	}
	c.state.Message = Message{}

	switch c.state.Step {
	case StepName:
		defer c.mu.Unlock()
		if !ValidateName(c.state.Name) {
			c.state.Message = Message{Text: MsgNameRequired, Kind: MessageError}
			return OutcomeInvalid
		}
		c.state.Step = StepEmail
		return OutcomeAdvanced

	case StepEmail:
		defer c.mu.Unlock()
		if !ValidateEmail(c.state.Email) {
			c.state.Message = Message{Text: MsgInvalidEmail, Kind: MessageError}
			return OutcomeInvalid
		}
		c.state.Step = StepPhone
		return OutcomeAdvanced
	}

	if !ValidatePhoneNumber(c.state.PhoneNumber) {
		c.state.Message = Message{Text: MsgInvalidPhone, Kind: MessageError}
		c.mu.Unlock()
		return OutcomeInvalid
	}
	sub := Submission{
		Name:        c.state.Name,
		Email:       c.state.Email,
		PhoneNumber: c.state.PhoneNumber,
	}
	c.inFlight = true
	c.mu.Unlock()

	result, err := c.submit(ctx, sub)

	c.mu.Lock()
	c.inFlight = false

	if err != nil {
		var rejected *SubmitError
		if errors.As(err, &rejected) {
			text := rejected.Text
			if text == "" {
				text = MsgRejectFallback
			}
			c.state.Message = Message{Text: text, Kind: MessageError}
			c.mu.Unlock()
			return OutcomeRejected
		}
		c.state.Message = Message{Text: MsgSubmitFailed, Kind: MessageError}
		c.mu.Unlock()
		return OutcomeFailed
	}

	text := MsgJoinedFallback
	if result != nil && strings.TrimSpace(result.Message) != "" {
		text = result.Message
	}
	c.state.Message = Message{Text: text, Kind: MessageSuccess}
	c.scheduleResetLocked()
	celebrate := c.celebrate
	c.mu.Unlock()

	celebrate()
	return OutcomeJoined
}

func (c *Controller) submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	if c.submitter == nil {
		return nil, errors.New("intake: no submitter configured")
	}
	return c.submitter.Submit(ctx, sub)
}

func (c *Controller) scheduleResetLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	if c.schedule == nil {
		return
	}

	var t Timer
	t = c.schedule(c.resetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.pending != t {
			return
		}
		c.pending = nil
		c.state = NewFormState()
	})
	c.pending = t
}

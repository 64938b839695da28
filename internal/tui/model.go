package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/intake"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type stepPrompt struct {
	label       string
	placeholder string
}

var prompts = map[intake.Step]stepPrompt{
	intake.StepName:  {label: "What's your name?", placeholder: "Jane Doe"},
	intake.StepEmail: {label: "What's your email?", placeholder: "jane@example.com"},
	intake.StepPhone: {label: "What's your phone number?", placeholder: "9876543210"},
}

// advancedMsg carries the result of an Advance that ran as a command.
type advancedMsg struct {
	outcome intake.Outcome
}

// resetMsg fires after the success banner has been shown long enough. seq
// ties it to one success so a stale tick cannot wipe newer input.
type resetMsg struct {
	seq int
}

type Options struct {
	ResetDelay time.Duration
	Logger     *log.Logger
	// Context bounds submissions. Defaults to context.Background.
	Context context.Context
}

// Model is the bubbletea program for the intake wizard. The reset after a
// successful submission is a tea.Tick rather than the controller's own timer
// so that it runs inside the program loop.
type Model struct {
	ctrl       *intake.Controller
	input      textinput.Model
	logger     *log.Logger
	ctx        context.Context
	resetDelay time.Duration
	resetSeq   int
	submitting bool
	quitting   bool
}

func New(submitter intake.Submitter, opts Options) Model {
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = intake.DefaultResetDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.NewDiscardLogger()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	input := textinput.New()
	input.Prompt = promptStyle.Render("> ")
	input.CharLimit = 256
	input.Width = 40
	input.Focus()

	m := Model{
		ctrl:       intake.NewController(submitter, intake.WithManualReset(), intake.WithResetDelay(opts.ResetDelay)),
		input:      input,
		logger:     opts.Logger,
		ctx:        opts.Context,
		resetDelay: opts.ResetDelay,
	}
	m.syncInput()
	return m
}

// State exposes the wizard state, mostly for tests.
func (m Model) State() intake.FormState {
	return m.ctrl.State()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.advance()
		}

	case advancedMsg:
		m.submitting = false
		return m.afterAdvance(msg.outcome)

	case resetMsg:
		if msg.seq == m.resetSeq {
			m.ctrl.Reset()
			m.syncInput()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	m.ctrl.SetCurrent(m.input.Value())

	if m.ctrl.State().Step == intake.StepPhone && intake.ValidatePhoneNumber(m.input.Value()) {
		// The submission does network I/O, so it runs off the update loop.
		m.submitting = true
		ctrl, ctx := m.ctrl, m.ctx
		return m, func() tea.Msg {
			return advancedMsg{outcome: ctrl.Advance(ctx)}
		}
	}

	return m.afterAdvance(m.ctrl.Advance(m.ctx))
}

func (m Model) afterAdvance(outcome intake.Outcome) (tea.Model, tea.Cmd) {
	state := m.ctrl.State()
	m.logger.Debug("Intake step processed", "step", state.Step.String(), "outcome", outcome.String())

	if outcome == intake.OutcomeAdvanced {
		m.syncInput()
	}
	if outcome != intake.OutcomeJoined {
		return m, nil
	}

	m.resetSeq++
	seq := m.resetSeq
	return m, tea.Tick(m.resetDelay, func(time.Time) tea.Msg {
		return resetMsg{seq: seq}
	})
}

// syncInput points the text input at the field of the current step.
func (m *Model) syncInput() {
	state := m.ctrl.State()
	p := prompts[state.Step]
	m.input.Placeholder = p.placeholder
	m.input.SetValue(state.Current())
	m.input.CursorEnd()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.ctrl.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Join the waitlist"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(stepCounter(state.Step)))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(prompts[state.Step].label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.submitting:
		b.WriteString(dimStyle.Render("Submitting..."))
	case state.Message.Kind == intake.MessageSuccess:
		b.WriteString(successStyle.Render(state.Message.Text))
	case state.Message.Kind == intake.MessageError:
		b.WriteString(errorStyle.Render(state.Message.Text))
	}
	b.WriteString("\n\n")

	action := "next"
	if state.Step == intake.StepPhone {
		action = "join"
	}
	b.WriteString(dimStyle.Render("enter " + action + " • esc quit"))

	return frameStyle.Render(b.String())
}

func stepCounter(s intake.Step) string {
	return fmt.Sprintf("Step %d of 3", int(s))
}

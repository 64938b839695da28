package intake

import "fmt"

// Step is one stage of the wizard. The zero value is not a valid step.
type Step int

const (
	StepName Step = iota + 1
	StepEmail
	StepPhone
)

func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepEmail:
		return "email"
	case StepPhone:
		return "phone"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Valid reports whether s is one of the three wizard steps.
func (s Step) Valid() bool {
	return s >= StepName && s <= StepPhone
}

type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageSuccess
	MessageError
)

func (k MessageKind) String() string {
	switch k {
	case MessageSuccess:
		return "success"
	case MessageError:
		return "error"
	default:
		return ""
	}
}

type Message struct {
	Text string
	Kind MessageKind
}

// FormState is the transient wizard state. It is never persisted.
type FormState struct {
	Step        Step
	Name        string
	Email       string
	PhoneNumber string
	Message     Message
}

// NewFormState returns the initial state: step one, everything empty.
func NewFormState() FormState {
	return FormState{Step: StepName}
}

// Current returns the field edited on the current step.
func (s FormState) Current() string {
	switch s.Step {
	case StepEmail:
		return s.Email
	case StepPhone:
		return s.PhoneNumber
	default:
		return s.Name
	}
}

// Outcome is the result of one Advance call.
type Outcome int

const (
	// OutcomeInvalid: local validation failed, nothing was sent.
	OutcomeInvalid Outcome = iota
	// OutcomeAdvanced: moved to the next step.
	OutcomeAdvanced
	// OutcomeJoined: the endpoint accepted the submission.
	OutcomeJoined
	// OutcomeRejected: the endpoint answered with an error.
	OutcomeRejected
	// OutcomeFailed: the request could not be completed or its reply parsed.
	OutcomeFailed
	// OutcomeBusy: a submission is already in flight; state is untouched.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeJoined:
		return "joined"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeBusy:
		return "busy"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

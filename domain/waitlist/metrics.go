package waitlist

import (
	"errors"

	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeJoined    = "joined"
	outcomeDuplicate = "duplicate"
	outcomeInvalid   = "invalid"
	outcomeError     = "error"
)

type submissionMetrics struct {
	submissions *prometheus.CounterVec
}

func newSubmissionMetrics(reg prometheus.Registerer) *submissionMetrics {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submissions by outcome.",
		},
		[]string{"outcome"},
	)

	if reg != nil {
		if err := reg.Register(counter); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				panic(err)
			}
			counter = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return &submissionMetrics{submissions: counter}
}

func (m *submissionMetrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func outcomeFor(err error) string {
	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeConflict:
		return outcomeDuplicate
	case apperrors.ErrorTypeInvalidRequest:
		return outcomeInvalid
	default:
		return outcomeError
	}
}

package waitlist

import (
	"context"

	"github.com/akeren/waitlist-api/internal/intake"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

// ServiceSubmitter lets an intake.Controller submit straight to the service,
// for surfaces served by this process.
type ServiceSubmitter struct {
	service        WaitlistService
	successMessage string
}

func NewServiceSubmitter(service WaitlistService, successMessage string) *ServiceSubmitter {
	return &ServiceSubmitter{service: service, successMessage: successMessage}
}

func (s *ServiceSubmitter) Submit(ctx context.Context, sub intake.Submission) (*intake.SubmitResult, error) {
	_, err := s.service.Join(ctx, &JoinWaitlistRequest{
		Name:        sub.Name,
		Email:       sub.Email,
		PhoneNumber: sub.PhoneNumber,
	})
	if err != nil {
		return nil, &intake.SubmitError{
			StatusCode: apperrors.HTTPStatusCode(err),
			Text:       apperrors.GetHumanReadableMessage(err),
		}
	}
	return &intake.SubmitResult{Message: s.successMessage}, nil
}

package client

import (
	"context"
	"errors"

	"github.com/akeren/waitlist-api/internal/intake"
)

// Submitter sends intake submissions through the HTTP API.
type Submitter struct {
	client *Client
}

func NewSubmitter(c *Client) *Submitter {
	return &Submitter{client: c}
}

// Submit maps a JSON error reply to *intake.SubmitError. Anything else that
// goes wrong, including an error reply that is not JSON, is returned as is.
func (s *Submitter) Submit(ctx context.Context, sub intake.Submission) (*intake.SubmitResult, error) {
	resp, err := s.client.JoinWaitlist(ctx, JoinRequest{
		Name:        sub.Name,
		Email:       sub.Email,
		PhoneNumber: sub.PhoneNumber,
	})
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.JSON {
			return nil, &intake.SubmitError{StatusCode: httpErr.StatusCode, Text: httpErr.APIError}
		}
		return nil, err
	}
	return &intake.SubmitResult{Message: resp.Message}, nil
}

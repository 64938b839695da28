package waitlist

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
	"github.com/gin-gonic/gin/binding"
)

// JoinWaitlistRequest is the body of POST /api/waitlist.
type JoinWaitlistRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// formatCheck carries the format rules applied after presence is known.
type formatCheck struct {
	Email       string `json:"email" binding:"waitlist_email"`
	PhoneNumber string `json:"phoneNumber" binding:"waitlist_phone"`
}

type WaitlistEntryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	CreatedAt   string `json:"created_at"`
}

var errInvalidBody = errors.New("request body is not a JSON value")

// decodeJoinRequest parses raw and checks that every field is present. It
// returns errInvalidBody (or a decode error) for bodies that are not usable
// JSON and validator.ValidationErrors for missing fields. A JSON value that
// is not an object carries no fields, so it fails the presence check.
func decodeJoinRequest(raw []byte) (*JoinWaitlistRequest, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) || bytes.Equal(trimmed, []byte("null")) {
		return nil, errInvalidBody
	}

	var req JoinWaitlistRequest
	if trimmed[0] != '{' {
		return &req, binding.Validator.ValidateStruct(&req)
	}

	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, err
	}
	return &req, binding.Validator.ValidateStruct(&req)
}

func (r *JoinWaitlistRequest) validateFormat() error {
	RegisterValidations()
	return binding.Validator.ValidateStruct(&formatCheck{Email: r.Email, PhoneNumber: r.PhoneNumber})
}

func ToWaitlistEntryModel(req *JoinWaitlistRequest) *models.WaitlistEntry {
	return &models.WaitlistEntry{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		ID:          entry.ID,
		Name:        entry.Name,
		Email:       entry.Email,
		PhoneNumber: entry.PhoneNumber,
		CreatedAt:   entry.CreatedAt.UTC().Format(constants.RFC3339DateTimeFormat),
	}
}

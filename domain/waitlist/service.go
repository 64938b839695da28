package waitlist

import (
	"context"

	"github.com/akeren/waitlist-api/internal/intake"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/constants"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

type WaitlistService interface {
	// Join validates req and adds it to the waitlist. Errors are
	// *apperrors.AppError values whose Message is safe to show callers.
	Join(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error)
}

type ServiceOptions struct {
	// StrictValidation re-checks email and phone formats on the server.
	StrictValidation bool
	// Cache is optional.
	Cache MembershipCache
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	opts       ServiceOptions
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, opts ServiceOptions) WaitlistService {
	return &waitlistService{logger: logger, repository: repository, opts: opts}
}

func (s *waitlistService) Join(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return nil, apperrors.NewInvalidRequestError(constants.MsgFieldsRequired, nil)
	}

	ctx, span := tracing.Start(ctx, "waitlist.Join", attribute.Bool("waitlist.strict", s.opts.StrictValidation))
	defer span.End()

	if s.opts.StrictValidation {
		if err := checkFormat(req); err != nil {
			span.SetAttributes(attribute.String("waitlist.outcome", "invalid"))
			return nil, err
		}
	}

	if s.opts.Cache != nil {
		member, err := s.opts.Cache.IsMember(ctx, req.Email)
		if err != nil {
			logger.Warn("Membership cache lookup failed; falling through to store", "error", err)
		} else if member {
			span.SetAttributes(attribute.String("waitlist.outcome", "duplicate"), attribute.Bool("waitlist.cache_hit", true))
			return nil, apperrors.NewConflictError(constants.MsgAlreadyOnWaitlist, nil)
		}
	}

	entry, err := s.repository.CreateEntry(ctx, ToWaitlistEntryModel(req))
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			logger.Info("Waitlist email already present")
			span.SetAttributes(attribute.String("waitlist.outcome", "duplicate"))
			s.remember(ctx, logger, req.Email)
			return nil, err
		}

		logger.Error("Failed to add user to waitlist", "error", err)
		tracing.Fail(span, err)
		if apperrors.GetErrorType(err) == apperrors.ErrorTypeUnknown {
			err = apperrors.NewDatabaseError(constants.MsgAddToWaitlistFail, err)
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("waitlist.outcome", "joined"))
	s.remember(ctx, logger, req.Email)

	logger.Info("User added to waitlist", "id", entry.ID)
	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) remember(ctx context.Context, logger *log.Logger, email string) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Remember(ctx, email); err != nil {
		logger.Warn("Failed to record waitlist membership in cache", "error", err)
	}
}

// checkFormat reports the email problem first, as the intake form would.
func checkFormat(req *JoinWaitlistRequest) error {
	err := req.validateFormat()
	if err == nil {
		return nil
	}

	failures := apperrors.ValidationFailures(err, &formatCheck{})
	switch {
	case apperrors.HasTag(failures, tagEmail):
		return apperrors.NewInvalidRequestError(intake.MsgInvalidEmail, err)
	case apperrors.HasTag(failures, tagPhone):
		return apperrors.NewInvalidRequestError(intake.MsgInvalidPhone, err)
	default:
		return apperrors.NewInternalServerError(constants.MsgAddToWaitlistFail, err)
	}
}

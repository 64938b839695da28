package waitlist

import (
	"errors"
	"net/http"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/pkg/constants"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

// NewWaitlistController serves POST /api/waitlist.
func NewWaitlistController(service WaitlistService, successMessage string) *router.RESTController {
	RegisterValidations()

	return router.NewRESTController(
		"WaitlistController",
		"/api/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			m := newSubmissionMetrics(rs.MetricsRegisterer())
			rs.AddPostHandler(c, "", joinWaitlistHandler(service, successMessage, m))
		},
	)
}

func joinWaitlistHandler(service WaitlistService, successMessage string, m *submissionMetrics) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		raw, err := ctx.GetRawData()
		if err != nil {
			m.observe(outcomeInvalid)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return router.ErrorResult(apperrors.StatusRequestTooLarge, constants.MsgPayloadTooLarge)
			}
			logger.Warn("Failed to read request body", "error", err)
			return router.BadRequestResult(constants.MsgInvalidRequestBody)
		}

		req, err := decodeJoinRequest(raw)
		if err != nil {
			m.observe(outcomeInvalid)
			if failures := apperrors.ValidationFailures(err, &JoinWaitlistRequest{}); len(failures) > 0 {
				logger.Info("Waitlist submission is missing fields", "failures", failures)
				return router.BadRequestResult(constants.MsgFieldsRequired)
			}
			logger.Info("Waitlist submission body is not valid JSON", "error", err)
			return router.BadRequestResult(constants.MsgInvalidRequestBody)
		}

		response, err := service.Join(ctx.Request.Context(), req)
		if err != nil {
			m.observe(outcomeFor(err))
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
			)
		}

		m.observe(outcomeJoined)
		return router.CreatedResult("user", response, successMessage)
	}
}

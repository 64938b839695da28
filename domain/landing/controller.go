package landing

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/intake"
)

// NewLandingController serves the intake form as plain HTML: GET / shows step
// one and POST /join advances the wizard. The form state travels in hidden
// fields, so nothing is kept between requests.
func NewLandingController(submitter intake.Submitter, resetDelay time.Duration) *router.RESTController {
	if resetDelay <= 0 {
		resetDelay = intake.DefaultResetDelay
	}

	return router.NewRESTController(
		"LandingController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, "", func(*router.RequestContext) *router.ServiceResult {
				return router.HTMLResult(http.StatusOK, formPage(pageData{State: intake.NewFormState()}))
			})
			rs.AddPostHandler(c, "join", joinHandler(submitter, resetDelay))
		},
	)
}

func joinHandler(submitter intake.Submitter, resetDelay time.Duration) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		celebrated := false
		ctrl := intake.NewController(submitter,
			intake.WithManualReset(),
			intake.WithResetDelay(resetDelay),
			intake.WithState(stateFromForm(ctx)),
			intake.WithCelebrate(func() { celebrated = true }),
		)
		ctrl.SetCurrent(ctx.PostForm("value"))

		outcome := ctrl.Advance(ctx.Request.Context())
		state := ctrl.State()
		logger.Debug("Intake form advanced", "step", state.Step.String(), "outcome", outcome.String())

		data := pageData{State: state, Celebrate: celebrated}
		if outcome == intake.OutcomeJoined {
			data.RefreshAfter = ctrl.ResetDelay()
		}
		return router.HTMLResult(http.StatusOK, formPage(data))
	}
}

func stateFromForm(ctx *router.RequestContext) intake.FormState {
	step, err := strconv.Atoi(ctx.PostForm("step"))
	if err != nil {
		step = int(intake.StepName)
	}
	return intake.FormState{
		Step:        intake.Step(step),
		Name:        ctx.PostForm("name"),
		Email:       ctx.PostForm("email"),
		PhoneNumber: ctx.PostForm("phoneNumber"),
	}
}

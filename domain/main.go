package domain

import (
	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/landing"
	"github.com/akeren/waitlist-api/domain/monitoring"
	"github.com/akeren/waitlist-api/domain/waitlist"
	"github.com/akeren/waitlist-api/internal/intake"
	"github.com/akeren/waitlist-api/pkg/constants"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	appCfg := appConfig.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{SuccessMessage: constants.DefaultSuccessMessage, StrictValidation: true}
	}

	waitlistOpts := waitlist.Options{
		SuccessMessage:   appCfg.SuccessMessage,
		StrictValidation: appCfg.StrictValidation,
		CacheTTL:         appCfg.MembershipTTL,
	}
	var monitoringCache monitoring.Cache
	if appConfig.Cache != nil {
		waitlistOpts.Cache = appConfig.Cache
		monitoringCache = appConfig.Cache
	}

	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, waitlistOpts)

	appConfig.RouterService.MountController(monitoring.NewMonitoringControllerFactory(appConfig.DB, monitoringCache).CreateController())
	appConfig.RouterService.MountController(waitlistFactory.CreateController())
	appConfig.RouterService.MountController(landing.NewLandingController(waitlistFactory.CreateSubmitter(), intake.DefaultResetDelay))
}

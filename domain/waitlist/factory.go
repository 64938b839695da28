package waitlist

import (
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"gorm.io/gorm"
)

type Options struct {
	SuccessMessage   string
	StrictValidation bool
	// Cache may be nil.
	Cache    KeyValueCache
	CacheTTL time.Duration
}

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController() *router.RESTController
	CreateSubmitter() *ServiceSubmitter
}

type DefaultWaitlistServiceFactory struct {
	db      *gorm.DB
	logger  *log.Logger
	opts    Options
	service WaitlistService
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, opts Options) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:     db,
		logger: logger,
		opts:   opts,
	}
}

// CreateService builds the service once; the controller and the submitter
// share it.
func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	if f.service == nil {
		repository := NewWaitlistRepository(f.db)
		f.service = NewWaitlistService(f.logger, repository, ServiceOptions{
			StrictValidation: f.opts.StrictValidation,
			Cache:            NewMembershipCache(f.opts.Cache, f.opts.CacheTTL),
		})
	}
	return f.service
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return NewWaitlistController(f.CreateService(), f.opts.SuccessMessage)
}

func (f *DefaultWaitlistServiceFactory) CreateSubmitter() *ServiceSubmitter {
	return NewServiceSubmitter(f.CreateService(), f.opts.SuccessMessage)
}

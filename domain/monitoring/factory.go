package monitoring

import (
	"github.com/akeren/waitlist-api/config/router"
	"gorm.io/gorm"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db    *gorm.DB
	cache Cache
}

// NewMonitoringControllerFactory accepts a nil cache when Redis is not
// configured.
func NewMonitoringControllerFactory(db *gorm.DB, cache Cache) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{db: db, cache: cache}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.db, f.cache)
}

package waitlist

import (
	"sync"

	"github.com/akeren/waitlist-api/internal/intake"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	tagEmail = "waitlist_email"
	tagPhone = "waitlist_phone"
)

var registerOnce sync.Once

// RegisterValidations adds the waitlist format tags to gin's validator. The
// rules are the intake form's own, so server and client agree.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("waitlist: gin validator engine is not go-playground/validator")
		}
		mustRegister(v, tagEmail, func(fl validator.FieldLevel) bool {
			return intake.ValidateEmail(fl.Field().String())
		})
		mustRegister(v, tagPhone, func(fl validator.FieldLevel) bool {
			return intake.ValidatePhoneNumber(fl.Field().String())
		})
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

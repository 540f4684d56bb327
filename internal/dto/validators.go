package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

// RegisterValidations installs custom binding rules on gin's validator
// engine. Call once at startup.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})
}

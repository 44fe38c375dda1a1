package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/pkg/security"
)

var (
	mrnPattern   = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)
)

var validRoles = map[model.StaffRole]bool{
	model.RoleAdmin:        true,
	model.RoleDoctor:       true,
	model.RoleNurse:        true,
	model.RoleReceptionist: true,
}

var validStatuses = map[model.AppointmentStatus]bool{
	model.AppointmentStatusScheduled: true,
	model.AppointmentStatusCompleted: true,
	model.AppointmentStatusCancelled: true,
	model.AppointmentStatusNoShow:    true,
}

var validGenders = map[string]bool{"Male": true, "Female": true, "Other": true}

var validBloodTypes = map[string]bool{
	"A+": true, "A-": true, "B+": true, "B-": true,
	"AB+": true, "AB-": true, "O+": true, "O-": true,
}

// RegisterCustomValidations wires the clinic-specific validation tags
// into gin's binding engine. Call once at startup before any request
// binding happens.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
		return validRoles[model.StaffRole(fl.Field().String())]
	})
	v.RegisterValidation("apptstatus", func(fl validator.FieldLevel) bool {
		return validStatuses[model.AppointmentStatus(fl.Field().String())]
	})
	v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return validGenders[fl.Field().String()]
	})
	v.RegisterValidation("bloodtype", func(fl validator.FieldLevel) bool {
		return validBloodTypes[fl.Field().String()]
	})
	v.RegisterValidation("mrn", func(fl validator.FieldLevel) bool {
		return mrnPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return security.ValidatePasswordStrength(fl.Field().String()) == nil
	})
}

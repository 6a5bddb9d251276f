package validator

import (
	"reflect"
	"strings"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the portal's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

// ValidateStruct validates struct tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("contact_status", validateContactStatus)

	// Report json names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleTeacher,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, role := range validRoles {
		if string(role) == value {
			return true
		}
	}
	return false
}

func validateContactStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.ContactStatus{
		models.ContactPending,
		models.ContactResponded,
	}

	value := fl.Field().String()
	for _, status := range validStatuses {
		if string(status) == value {
			return true
		}
	}
	return false
}

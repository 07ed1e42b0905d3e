package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gauss2302/agrogame/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// cropPattern is the shape of a catalog key. Whether the crop exists is
// decided by the catalog, not here.
var cropPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("stage", validateStage)
	_ = v.RegisterValidation("crop", validateCrop)
	_ = v.RegisterValidation("order_status", validateOrderStatus)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "stage":
			errs[field] = "Must be growing or ready"
		case "crop":
			errs[field] = "Invalid crop type"
		case "order_status":
			errs[field] = "Invalid order status"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateStage accepts only the stages a client may request. Planting and
// harvesting have their own endpoints.
func validateStage(fl validator.FieldLevel) bool {
	stage := domain.Stage(fl.Field().String())
	return stage.IsTimeDriven()
}

func validateCrop(fl validator.FieldLevel) bool {
	return cropPattern.MatchString(fl.Field().String())
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return domain.OrderStatus(fl.Field().String()).Valid()
}

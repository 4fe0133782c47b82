package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Rent periods are month-granular, e.g. "2026-08".
var paymentPeriodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a validation helper with the ledger's custom
// rules registered.
func NewValidationHelper() *ValidationHelper {
	v := validator.New()
	_ = v.RegisterValidation("payment_period", validPaymentPeriod)
	return &ValidationHelper{
		validator: v,
	}
}

func validPaymentPeriod(fl validator.FieldLevel) bool {
	return paymentPeriodPattern.MatchString(fl.Field().String())
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// SendErrorResponse sends a JSON error response, expanding validator
// failures into per-field detail.
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		errorResp.Details = make(map[string]string)
		for _, err := range validationErr.(validator.ValidationErrors) {
			errorResp.Details[err.Field()] = describeFieldError(err)
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}

func describeFieldError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "min", "max":
		return fmt.Sprintf("must be %s %s", err.Tag(), err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "datetime":
		return fmt.Sprintf("must be a date of the form %s", err.Param())
	case "payment_period":
		return "must be a rent period of the form YYYY-MM"
	default:
		return fmt.Sprintf("failed validation on the '%s' rule", err.Tag())
	}
}

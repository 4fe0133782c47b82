package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid payment request", func(t *testing.T) {
		valid := ApplyPaymentRequest{
			TenantID:      "tenant-1",
			Amount:        500,
			PaymentDate:   "2026-08-01",
			PaymentMethod: "cash",
			PaymentPeriod: "2026-08",
		}

		err := vh.ValidateStruct(&valid)
		assert.NoError(t, err)
	})

	t.Run("missing required fields", func(t *testing.T) {
		invalid := ApplyPaymentRequest{
			PaymentMethod: "cash",
		}

		err := vh.ValidateStruct(&invalid)
		assert.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		assert.True(t, ok)
		// TenantID, Amount, PaymentDate, PaymentPeriod all missing
		assert.Len(t, validationErrors, 4)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		invalid := ApplyPaymentRequest{
			TenantID:      "tenant-1",
			Amount:        500,
			PaymentDate:   "2026-08-01",
			PaymentMethod: "barter",
			PaymentPeriod: "2026-08",
		}

		err := vh.ValidateStruct(&invalid)
		assert.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		assert.True(t, ok)
		assert.Len(t, validationErrors, 1)
		assert.Equal(t, "PaymentMethod", validationErrors[0].Field())
		assert.Equal(t, "oneof", validationErrors[0].Tag())
	})

	t.Run("payment period format", func(t *testing.T) {
		base := ApplyPaymentRequest{
			TenantID:      "tenant-1",
			Amount:        500,
			PaymentDate:   "2026-08-01",
			PaymentMethod: "cash",
		}

		for _, period := range []string{"2026-08", "1999-01", "2030-12"} {
			req := base
			req.PaymentPeriod = period
			assert.NoError(t, vh.ValidateStruct(&req), "period %q should be accepted", period)
		}

		for _, period := range []string{"2026-8", "2026-13", "2026-00", "Aug-2026", "2026/08", "2026-08-01"} {
			req := base
			req.PaymentPeriod = period
			err := vh.ValidateStruct(&req)
			assert.Error(t, err, "period %q should be rejected", period)

			validationErrors, ok := err.(validator.ValidationErrors)
			assert.True(t, ok)
			assert.Equal(t, "payment_period", validationErrors[0].Tag())
		}
	})

	t.Run("malformed payment date", func(t *testing.T) {
		invalid := ApplyPaymentRequest{
			TenantID:      "tenant-1",
			Amount:        500,
			PaymentDate:   "01/08/2026",
			PaymentMethod: "cash",
			PaymentPeriod: "2026-08",
		}

		err := vh.ValidateStruct(&invalid)
		assert.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		assert.True(t, ok)
		assert.Len(t, validationErrors, 1)
		assert.Equal(t, "datetime", validationErrors[0].Tag())
	})
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("error response without validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Something went wrong", response.Error)
		assert.Nil(t, response.Details)
	})

	t.Run("error response carries validation details", func(t *testing.T) {
		vh := NewValidationHelper()
		invalid := AmendPaymentRequest{
			Amount:      -5,
			PaymentDate: "yesterday",
		}

		validationErr := vh.ValidateStruct(&invalid)
		assert.Error(t, validationErr)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, validationErr)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Validation failed", response.Error)
		assert.NotNil(t, response.Details)
		assert.Equal(t, "must be greater than 0", response.Details["Amount"])
		assert.Equal(t, "must be a date of the form 2006-01-02", response.Details["PaymentDate"])
		assert.Equal(t, "is required", response.Details["PaymentMethod"])
	})

	t.Run("payment period detail message", func(t *testing.T) {
		vh := NewValidationHelper()
		invalid := ApplyPaymentRequest{
			TenantID:      "tenant-1",
			Amount:        500,
			PaymentDate:   "2026-08-01",
			PaymentMethod: "cash",
			PaymentPeriod: "August 2026",
		}

		validationErr := vh.ValidateStruct(&invalid)
		assert.Error(t, validationErr)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, validationErr)

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "must be a rent period of the form YYYY-MM", response.Details["PaymentPeriod"])
	})
}

// controllers/payment.go
package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"startup-registration/common"
	"startup-registration/models"
	"startup-registration/services"

	"github.com/go-playground/validator/v10"
)

// PaymentController handles order creation and payment verification
type PaymentController struct {
	Payments *services.PaymentService
	Log      *slog.Logger
	validate *validator.Validate
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(payments *services.PaymentService, log *slog.Logger) *PaymentController {
	return &PaymentController{
		Payments: payments,
		Log:      log,
		validate: services.NewValidator(),
	}
}

// VerifyEmail tells the client whether a registration exists for an email
func (pc *PaymentController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailCheckRequest
	if err := decodeJSON(w, r, pc.validate, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"exists": false, "message": badRequestMessage(err)})
		return
	}

	_, err := pc.Payments.VerifyEmailExists(r.Context(), req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"exists": true})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"exists": false, "message": "Email does not exist"})
	default:
		pc.Log.ErrorContext(r.Context(), "error verifying email", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
}

// CreateOrder creates a gateway order for a registered email
func (pc *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := decodeJSON(w, r, pc.validate, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": badRequestMessage(err)})
		return
	}

	order, err := pc.Payments.CreateOrder(r.Context(), req.Email, req.Amount)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"orderId":  order.ID,
			"amount":   order.Amount,
			"currency": order.Currency,
		})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "Email does not exist"})
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": err.Error()})
	default:
		pc.Log.ErrorContext(r.Context(), "error creating payment order", "email", req.Email, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Failed to create payment order"})
	}
}

// VerifyPayment checks the checkout signature and marks the registration as paid
func (pc *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentVerification
	if err := decodeJSON(w, r, pc.validate, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": badRequestMessage(err)})
		return
	}

	_, err := pc.Payments.VerifyPayment(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Payment verified and updated successfully"})
	case errors.Is(err, common.ErrSignatureMismatch):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Payment verification failed"})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "Form not found"})
	default:
		pc.Log.ErrorContext(r.Context(), "error updating payment status", "email", req.Email, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Error updating payment status"})
	}
}

func badRequestMessage(err error) string {
	if errors.Is(err, common.ErrValidation) {
		return err.Error()
	}
	return "Invalid request body"
}

package models

// EmailCheckRequest is the body of POST /api/payment/verify-email.
type EmailCheckRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateOrderRequest is the body of POST /api/payment/order. Amount is in
// major currency units.
type CreateOrderRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Email  string  `json:"email" validate:"required,email"`
}

// PaymentVerification is the body of POST /api/payment/verify, as posted
// back by the checkout widget.
type PaymentVerification struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

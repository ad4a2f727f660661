package models

// Currency used for every payment order.
const CurrencyINR = "INR"

// OrderRequest is what gets sent to the payment gateway. Amount is in minor
// currency units (paise for INR).
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is a gateway order as confirmed by the gateway. It is never persisted.
type Order struct {
	ID       string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

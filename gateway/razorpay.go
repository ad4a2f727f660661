package gateway

import (
	"context"
	"fmt"
	"math"

	"startup-registration/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderAPI is the order resource of the Razorpay SDK.
type OrderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayClient creates payment orders.
type RazorpayClient struct {
	orders OrderAPI
}

// NewRazorpayClient authenticates with the key id and secret.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayClient{orders: client.Order}
}

// NewRazorpayClientWithAPI wraps an existing order resource.
func NewRazorpayClientWithAPI(orders OrderAPI) *RazorpayClient {
	return &RazorpayClient{orders: orders}
}

// CreateOrder registers an order with the gateway and returns it as the
// gateway confirmed it.
func (c *RazorpayClient) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}
	if len(req.Notes) > 0 {
		notes := make(map[string]interface{}, len(req.Notes))
		for k, v := range req.Notes {
			notes[k] = v
		}
		data["notes"] = notes
	}

	body, err := c.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return parseOrder(body)
}

func parseOrder(body map[string]interface{}) (*models.Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("create order: response has no order id")
	}

	amount, err := toInt64(body["amount"])
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	order := &models.Order{ID: id, Amount: amount}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)
	return order, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("amount %v is not whole", n)
		}
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected amount %v (%T)", v, v)
	}
}

package gateway

import (
	"context"
	"errors"
	"testing"

	"startup-registration/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	got  map[string]interface{}
	resp map[string]interface{}
	err  error
}

func (f *fakeOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.got = data
	return f.resp, f.err
}

func TestRazorpayClient_CreateOrder(t *testing.T) {
	orders := &fakeOrders{resp: map[string]interface{}{
		"id":       "order_123",
		"amount":   float64(50000),
		"currency": "INR",
		"receipt":  "receipt_order_1",
		"status":   "created",
	}}
	c := NewRazorpayClientWithAPI(orders)

	order, err := c.CreateOrder(context.Background(), models.OrderRequest{
		Amount:   50000,
		Currency: "INR",
		Receipt:  "receipt_order_1",
		Notes:    map[string]string{"email": "a@x.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50000), orders.got["amount"])
	assert.Equal(t, "INR", orders.got["currency"])
	assert.Equal(t, "receipt_order_1", orders.got["receipt"])
	assert.Equal(t, map[string]interface{}{"email": "a@x.com"}, orders.got["notes"])

	assert.Equal(t, &models.Order{
		ID:       "order_123",
		Amount:   50000,
		Currency: "INR",
		Receipt:  "receipt_order_1",
		Status:   "created",
	}, order)
}

func TestRazorpayClient_CreateOrderErrors(t *testing.T) {
	sdkErr := errors.New("BAD_REQUEST_ERROR")

	tests := []struct {
		name   string
		orders *fakeOrders
	}{
		{"sdk error", &fakeOrders{err: sdkErr}},
		{"missing id", &fakeOrders{resp: map[string]interface{}{"amount": float64(100)}}},
		{"fractional amount", &fakeOrders{resp: map[string]interface{}{"id": "order_1", "amount": 10.5}}},
		{"amount of wrong type", &fakeOrders{resp: map[string]interface{}{"id": "order_1", "amount": "100"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRazorpayClientWithAPI(tt.orders).CreateOrder(context.Background(), models.OrderRequest{Amount: 100, Currency: "INR"})
			assert.Error(t, err)
		})
	}

	_, err := NewRazorpayClientWithAPI(&fakeOrders{err: sdkErr}).CreateOrder(context.Background(), models.OrderRequest{})
	assert.ErrorIs(t, err, sdkErr)
}

func TestRazorpayClient_CancelledContextSkipsCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	orders := &fakeOrders{}

	_, err := NewRazorpayClientWithAPI(orders).CreateOrder(ctx, models.OrderRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, orders.got)
}

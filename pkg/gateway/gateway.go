// Package gateway wraps the payment provider behind a narrow interface so the
// booking flow can be exercised with a test double.
package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator creates a provider-side order for an amount to be collected.
type OrderCreator interface {
	// CreateOrder returns the provider order id for the given amount in the
	// smallest currency unit.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error)
}

// RazorpayGateway is the production OrderCreator.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("create gateway order: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("gateway order response missing id")
	}

	return orderID, nil
}

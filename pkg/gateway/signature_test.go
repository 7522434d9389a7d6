package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test-secret"
	sig := SignPayment("order_abc", "pay_123", secret)

	t.Run("accepts the genuine signature", func(t *testing.T) {
		assert.True(t, VerifyPaymentSignature("order_abc", "pay_123", sig, secret))
	})

	t.Run("rejects a tampered payment id", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature("order_abc", "pay_456", sig, secret))
	})

	t.Run("rejects a tampered order id", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature("order_xyz", "pay_123", sig, secret))
	})

	t.Run("rejects a signature under the wrong secret", func(t *testing.T) {
		other := SignPayment("order_abc", "pay_123", "other-secret")
		assert.False(t, VerifyPaymentSignature("order_abc", "pay_123", other, secret))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature("order_abc", "pay_123", "deadbeef", secret))
	})
}

func TestSignPaymentIsDeterministic(t *testing.T) {
	a := SignPayment("order_abc", "pay_123", "s")
	b := SignPayment("order_abc", "pay_123", "s")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

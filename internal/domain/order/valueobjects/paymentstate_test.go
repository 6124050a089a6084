package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentState_IsValid(t *testing.T) {
	valid := []PaymentState{
		PaymentStatePending,
		PaymentStateCompleted,
		PaymentStateCancelled,
		PaymentStateFailed,
		PaymentStateRefunded,
		PaymentStateRefundFailed,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}

	assert.False(t, PaymentState("processed").IsValid())
	assert.False(t, PaymentState("").IsValid())
}

func TestPaymentState_IsSettled(t *testing.T) {
	assert.True(t, PaymentStateCompleted.IsSettled())
	assert.True(t, PaymentStateRefunded.IsSettled())
	assert.False(t, PaymentStatePending.IsSettled())
	assert.False(t, PaymentStateCancelled.IsSettled())
	assert.False(t, PaymentStateFailed.IsSettled())
	assert.False(t, PaymentStateRefundFailed.IsSettled())
}

func TestPaymentState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from PaymentState
		to   PaymentState
		want bool
	}{
		{"pending to completed", PaymentStatePending, PaymentStateCompleted, true},
		{"pending to cancelled", PaymentStatePending, PaymentStateCancelled, true},
		{"pending to failed", PaymentStatePending, PaymentStateFailed, true},
		{"completed to refunded", PaymentStateCompleted, PaymentStateRefunded, true},
		{"completed to pending rejected", PaymentStateCompleted, PaymentStatePending, false},
		{"completed to cancelled rejected", PaymentStateCompleted, PaymentStateCancelled, false},
		{"refunded to pending rejected", PaymentStateRefunded, PaymentStatePending, false},
		{"refunded to cancelled rejected", PaymentStateRefunded, PaymentStateCancelled, false},
		{"refunded to completed rejected", PaymentStateRefunded, PaymentStateCompleted, false},
		{"refunded to failed rejected", PaymentStateRefunded, PaymentStateFailed, false},
		{"refunded is idempotent", PaymentStateRefunded, PaymentStateRefunded, true},
		{"same state is a no-op transition", PaymentStateCompleted, PaymentStateCompleted, true},
		{"failed back to pending allowed", PaymentStateFailed, PaymentStatePending, true},
		{"completed to refund_failed", PaymentStateCompleted, PaymentStateRefundFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

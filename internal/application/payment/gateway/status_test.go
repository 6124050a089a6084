package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "tixgate/internal/domain/order/valueobjects"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status string
		want   vo.PaymentState
	}{
		{"processed", vo.PaymentStateCompleted},
		{"paid", vo.PaymentStateCompleted},
		{"completed", vo.PaymentStatePending},
		{"pending", vo.PaymentStatePending},
		{"failed", vo.PaymentStateFailed},
		{"failure", vo.PaymentStateFailed},
		{"cancelled", vo.PaymentStateCancelled},
		{"refunded", vo.PaymentStateRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, MapStatus(tt.status))
		})
	}
}

func TestMapStatus_CaseInsensitive(t *testing.T) {
	assert.Equal(t, vo.PaymentStateCompleted, MapStatus("Processed"))
	assert.Equal(t, vo.PaymentStateCompleted, MapStatus("PAID"))
	assert.Equal(t, vo.PaymentStateCancelled, MapStatus("Cancelled"))
}

func TestMapStatus_UnknownFallsBackToPending(t *testing.T) {
	for _, s := range []string{"", "weird", "settled", "chargeback"} {
		assert.Equal(t, vo.PaymentStatePending, MapStatus(s), "status %q", s)
	}
}

package gateway

import (
	"strings"

	vo "tixgate/internal/domain/order/valueobjects"
)

// statusTable maps Dwolla's status vocabulary onto the canonical
// payment states. Only "processed" and "paid" mean money has actually
// moved; Dwolla reports "completed" for checkout sessions that have
// not yet settled, so it stays pending and is re-checked by a later
// webhook.
var statusTable = map[string]vo.PaymentState{
	"processed": vo.PaymentStateCompleted,
	"paid":      vo.PaymentStateCompleted,
	"completed": vo.PaymentStatePending,
	"pending":   vo.PaymentStatePending,
	"failed":    vo.PaymentStateFailed,
	"failure":   vo.PaymentStateFailed,
	"cancelled": vo.PaymentStateCancelled,
	"refunded":  vo.PaymentStateRefunded,
}

// MapStatus translates a processor-reported status string into a
// canonical payment state. Lookup is case-insensitive; unknown
// statuses map to pending rather than to a wrong terminal state, so a
// later authoritative lookup can still resolve them.
func MapStatus(processorStatus string) vo.PaymentState {
	if state, ok := statusTable[strings.ToLower(processorStatus)]; ok {
		return state
	}
	return vo.PaymentStatePending
}

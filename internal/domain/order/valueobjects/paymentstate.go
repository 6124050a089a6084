package valueobjects

// PaymentState is the canonical payment vocabulary the gateway emits to
// the host ticketing application. Every processor-reported status is
// translated into exactly one of these before leaving the core.
type PaymentState string

const (
	PaymentStatePending      PaymentState = "pending"
	PaymentStateCompleted    PaymentState = "completed"
	PaymentStateCancelled    PaymentState = "cancelled"
	PaymentStateFailed       PaymentState = "failed"
	PaymentStateRefunded     PaymentState = "refunded"
	PaymentStateRefundFailed PaymentState = "refund_failed"
)

func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStatePending, PaymentStateCompleted, PaymentStateCancelled,
		PaymentStateFailed, PaymentStateRefunded, PaymentStateRefundFailed:
		return true
	default:
		return false
	}
}

// IsSettled reports whether money has moved for this state. Settled
// states must never be regressed by a later pending or cancel event.
func (s PaymentState) IsSettled() bool {
	return s == PaymentStateCompleted || s == PaymentStateRefunded
}

// CanTransitionTo enforces monotonicity: once a token is completed or
// refunded, pending and cancelled events are stale signals and must be
// ignored. Refunded is terminal, so a late "processed" webhook cannot
// resurrect a refunded payment. Re-applying the current state is
// allowed (idempotent no-op at the caller).
func (s PaymentState) CanTransitionTo(next PaymentState) bool {
	if s == next {
		return true
	}
	if s == PaymentStateRefunded {
		return false
	}
	if s.IsSettled() {
		return next != PaymentStatePending && next != PaymentStateCancelled
	}
	return true
}

func (s PaymentState) String() string {
	return string(s)
}

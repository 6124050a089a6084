package order

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Host lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// Host is the ticketing application collaborator the gateway core
// calls into. Implementations must make ApplyOutcome idempotent and
// monotonic per payment token: applying the current state again is a
// no-op, and a completed or refunded token is never regressed to
// pending or cancelled, even under concurrent events for the same
// token (compare-and-set semantics).
type Host interface {
	// LookupOrder returns the pending order for a payment token.
	LookupOrder(ctx context.Context, paymentToken string) (*Order, error)

	// LookupAttendeeByToken returns the attendee record behind a
	// payment token, carrying the stored transaction id and access
	// token.
	LookupAttendeeByToken(ctx context.Context, paymentToken string) (*Attendee, error)

	// LookupAttendeeByTransaction correlates a processor transaction
	// id back to an attendee record. Webhooks arrive keyed by the
	// processor's id, not by the payment token.
	LookupAttendeeByTransaction(ctx context.Context, transactionID string) (*Attendee, error)

	// LookupTransactionID returns the stored processor transaction id
	// for a token, or "" when none has been recorded.
	LookupTransactionID(ctx context.Context, paymentToken string) (string, error)

	// ApplyOutcome applies a canonical payment result. Idempotent and
	// monotonic; see interface doc.
	ApplyOutcome(ctx context.Context, result PaymentResult) error

	// VerifyOrderStillValid re-checks that an order is still available
	// for purchase right before the charge is finalized. A non-nil
	// error aborts the charge.
	VerifyOrderStillValid(ctx context.Context, paymentToken string) error
}

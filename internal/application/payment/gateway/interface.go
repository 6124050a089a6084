package gateway

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
)

// Signature verification errors. Missing inputs are reported
// individually to aid operator diagnosis; a mismatch is deliberately
// uninformative.
var (
	ErrMissingSignature  = errors.New("missing proposed signature")
	ErrMissingCheckoutID = errors.New("missing checkout id")
	ErrMissingAmount     = errors.New("missing transaction amount")
	ErrSignatureMismatch = errors.New("signature verification failed")
)

// Response is the normalized envelope every gateway call returns,
// including transport failures: callers branch on Success and never
// see raw transport errors.
type Response struct {
	Success bool
	// Message carries the processor's diagnostic or a normalized
	// transport failure description. Log-only; never shown verbatim
	// to end users.
	Message string

	// CheckoutID is set on successful checkout creation.
	CheckoutID string
	// Result is the processor's result code on checkout creation
	// failure.
	Result string

	// Transaction is the nested payload of transaction lookups and
	// refund submissions.
	Transaction *TransactionInfo

	// Raw is the unparsed response body, kept for logging.
	Raw json.RawMessage
}

// TransactionInfo is the processor's view of a funds-movement event.
type TransactionInfo struct {
	ID            string
	Status        string
	Amount        decimal.Decimal
	DestinationID string
}

// CheckoutRequest carries the order-shaped half of a checkout
// creation. Credentials, feature flags and the destination account are
// the client's configuration, not per-request input.
type CheckoutRequest struct {
	PaymentToken string
	CallbackURL  string
	RedirectURL  string
	Total        vo.Money
	Items        []order.LineItem
}

// Client issues requests against the processor's off-site gateway and
// REST endpoints. Implementations normalize every failure into a
// Response with Success=false.
type Client interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) *Response
	GetTransaction(ctx context.Context, transactionID string) *Response
	SubmitRefund(ctx context.Context, transactionID, fundsSource string, amount decimal.Decimal) *Response

	// CheckoutURL returns the hosted payment page for a checkout id.
	CheckoutURL(checkoutID string) string
}

// SignatureVerifier checks the two authentication schemes of the
// off-site gateway. Both are pure given the configured secret.
type SignatureVerifier interface {
	// VerifyWebhookSignature checks the signature header of a webhook
	// notification against the exact raw request body.
	VerifyWebhookSignature(body []byte, signature string) error

	// VerifyGatewaySignature checks the redirect/callback signature
	// computed over the checkout id and the two-decimal amount.
	VerifyGatewaySignature(signature, checkoutID, amount string) error
}

package order

import vo "tixgate/internal/domain/order/valueobjects"

// PaymentResult is the single canonical outcome every gateway event
// converges on. The host applies it idempotently per token; the
// message and raw payload are diagnostic only and must not be echoed
// verbatim to end users.
type PaymentResult struct {
	PaymentToken        string
	State               vo.PaymentState
	TransactionID       string
	RefundTransactionID string
	Message             string
	Raw                 map[string]any
}

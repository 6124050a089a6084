package order

import vo "tixgate/internal/domain/order/valueobjects"

// Attendee is the host's per-buyer record behind an order. The gateway
// core reads its correlation fields (payment token, processor
// transaction id, access token) but never owns its storage.
type Attendee struct {
	ID            uint
	PaymentToken  string
	TransactionID string
	AccessToken   string
	Email         string
	FirstName     string
	LastName      string
	PaymentState  vo.PaymentState
}

package dwolla

import "encoding/json"

// maxItemFieldLen is the longest item name or description the hosted
// checkout accepts.
const maxItemFieldLen = 127

// checkoutRequest is the body of POST payment/request. Amounts go on
// the wire as JSON numbers rendered with two decimal places.
type checkoutRequest struct {
	Key                      string        `json:"key"`
	Secret                   string        `json:"secret"`
	Callback                 string        `json:"callback"`
	Redirect                 string        `json:"redirect"`
	AllowFundingSources      bool          `json:"allowFundingSources"`
	AdditionalFundingSources bool          `json:"additionalFundingSources"`
	AllowGuestCheckout       bool          `json:"allowGuestCheckout"`
	AssumeCosts              bool          `json:"assumeCosts"`
	Test                     bool          `json:"test"`
	OrderID                  string        `json:"orderId,omitempty"`
	PurchaseOrder            purchaseOrder `json:"purchaseOrder"`
}

type purchaseOrder struct {
	DestinationID string      `json:"destinationId"`
	Shipping      json.Number `json:"shipping"`
	Tax           json.Number `json:"tax"`
	Total         json.Number `json:"total"`
	OrderItems    []orderItem `json:"orderItems"`
}

// orderItem uses Dwolla's PascalCase keys, unlike the camelCase
// envelope around it.
type orderItem struct {
	Name        string      `json:"Name"`
	Description string      `json:"Description"`
	Price       json.Number `json:"Price"`
	Quantity    int         `json:"Quantity"`
}

// checkoutResponse is the reply to payment/request. Result is
// "Success" with a CheckoutId, or "Failure" with a Message.
type checkoutResponse struct {
	Result     string `json:"Result"`
	CheckoutID string `json:"CheckoutId"`
	Message    string `json:"Message"`
}

// restEnvelope wraps the REST API replies for transaction lookups.
type restEnvelope struct {
	Success  bool            `json:"Success"`
	Message  string          `json:"Message"`
	Response json.RawMessage `json:"Response"`
}

// transactionPayload is the Response body of a transaction lookup.
type transactionPayload struct {
	ID            json.Number `json:"Id"`
	Status        string      `json:"Status"`
	Amount        json.Number `json:"Amount"`
	DestinationID string      `json:"DestinationId"`
}

// refundPayload is the Response body of a refund submission.
type refundPayload struct {
	TransactionID json.Number `json:"TransactionId"`
	RefundDate    string      `json:"RefundDate"`
	Amount        json.Number `json:"Amount"`
}

// refundRequest is the body of POST oauth/rest/transactions/refund.
type refundRequest struct {
	OAuthToken    string      `json:"oauth_token"`
	PIN           string      `json:"pin"`
	TransactionID string      `json:"transactionId"`
	FundsSource   string      `json:"fundsSource"`
	Amount        json.Number `json:"amount"`
}

func truncateItemField(s string) string {
	if len(s) <= maxItemFieldLen {
		return s
	}
	return s[:maxItemFieldLen]
}

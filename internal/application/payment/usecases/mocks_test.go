package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/domain/order"
	"tixgate/internal/shared/logger"
)

type mockHost struct {
	LookupOrderFunc                 func(ctx context.Context, paymentToken string) (*order.Order, error)
	LookupAttendeeByTokenFunc       func(ctx context.Context, paymentToken string) (*order.Attendee, error)
	LookupAttendeeByTransactionFunc func(ctx context.Context, transactionID string) (*order.Attendee, error)
	LookupTransactionIDFunc         func(ctx context.Context, paymentToken string) (string, error)
	ApplyOutcomeFunc                func(ctx context.Context, result order.PaymentResult) error
	VerifyOrderStillValidFunc       func(ctx context.Context, paymentToken string) error
}

func (m *mockHost) LookupOrder(ctx context.Context, paymentToken string) (*order.Order, error) {
	if m.LookupOrderFunc != nil {
		return m.LookupOrderFunc(ctx, paymentToken)
	}
	return nil, order.ErrNotFound
}

func (m *mockHost) LookupAttendeeByToken(ctx context.Context, paymentToken string) (*order.Attendee, error) {
	if m.LookupAttendeeByTokenFunc != nil {
		return m.LookupAttendeeByTokenFunc(ctx, paymentToken)
	}
	return nil, order.ErrNotFound
}

func (m *mockHost) LookupAttendeeByTransaction(ctx context.Context, transactionID string) (*order.Attendee, error) {
	if m.LookupAttendeeByTransactionFunc != nil {
		return m.LookupAttendeeByTransactionFunc(ctx, transactionID)
	}
	return nil, order.ErrNotFound
}

func (m *mockHost) LookupTransactionID(ctx context.Context, paymentToken string) (string, error) {
	if m.LookupTransactionIDFunc != nil {
		return m.LookupTransactionIDFunc(ctx, paymentToken)
	}
	return "", nil
}

func (m *mockHost) ApplyOutcome(ctx context.Context, result order.PaymentResult) error {
	if m.ApplyOutcomeFunc != nil {
		return m.ApplyOutcomeFunc(ctx, result)
	}
	return nil
}

func (m *mockHost) VerifyOrderStillValid(ctx context.Context, paymentToken string) error {
	if m.VerifyOrderStillValidFunc != nil {
		return m.VerifyOrderStillValidFunc(ctx, paymentToken)
	}
	return nil
}

type mockGatewayClient struct {
	CreateCheckoutFunc func(ctx context.Context, req gateway.CheckoutRequest) *gateway.Response
	GetTransactionFunc func(ctx context.Context, transactionID string) *gateway.Response
	SubmitRefundFunc   func(ctx context.Context, transactionID, fundsSource string, amount decimal.Decimal) *gateway.Response
	CheckoutURLFunc    func(checkoutID string) string
}

func (m *mockGatewayClient) CreateCheckout(ctx context.Context, req gateway.CheckoutRequest) *gateway.Response {
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, req)
	}
	return &gateway.Response{}
}

func (m *mockGatewayClient) GetTransaction(ctx context.Context, transactionID string) *gateway.Response {
	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(ctx, transactionID)
	}
	return &gateway.Response{}
}

func (m *mockGatewayClient) SubmitRefund(ctx context.Context, transactionID, fundsSource string, amount decimal.Decimal) *gateway.Response {
	if m.SubmitRefundFunc != nil {
		return m.SubmitRefundFunc(ctx, transactionID, fundsSource, amount)
	}
	return &gateway.Response{}
}

func (m *mockGatewayClient) CheckoutURL(checkoutID string) string {
	if m.CheckoutURLFunc != nil {
		return m.CheckoutURLFunc(checkoutID)
	}
	return "https://checkout.example.test/" + checkoutID
}

type mockSignatureVerifier struct {
	VerifyWebhookSignatureFunc func(body []byte, signature string) error
	VerifyGatewaySignatureFunc func(signature, checkoutID, amount string) error
}

func (m *mockSignatureVerifier) VerifyWebhookSignature(body []byte, signature string) error {
	if m.VerifyWebhookSignatureFunc != nil {
		return m.VerifyWebhookSignatureFunc(body, signature)
	}
	return nil
}

func (m *mockSignatureVerifier) VerifyGatewaySignature(signature, checkoutID, amount string) error {
	if m.VerifyGatewaySignatureFunc != nil {
		return m.VerifyGatewaySignatureFunc(signature, checkoutID, amount)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Named(name string) logger.Interface              { return m }

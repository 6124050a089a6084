package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
	apperrors "tixgate/internal/shared/errors"
)

func TestRefundPaymentUseCase_Execute_Success(t *testing.T) {
	var applied *order.PaymentResult
	mockH := &mockHost{
		LookupTransactionIDFunc: func(ctx context.Context, paymentToken string) (string, error) {
			return "123456", nil
		},
		ApplyOutcomeFunc: func(ctx context.Context, result order.PaymentResult) error {
			applied = &result
			return nil
		},
	}
	var refundArgs struct {
		transactionID string
		fundsSource   string
		amount        decimal.Decimal
	}
	mockGW := &mockGatewayClient{
		GetTransactionFunc: func(ctx context.Context, transactionID string) *gateway.Response {
			return &gateway.Response{
				Success: true,
				Transaction: &gateway.TransactionInfo{
					ID:     transactionID,
					Status: "processed",
					Amount: decimal.RequireFromString("25.00"),
				},
			}
		},
		SubmitRefundFunc: func(ctx context.Context, transactionID, fundsSource string, amount decimal.Decimal) *gateway.Response {
			refundArgs.transactionID = transactionID
			refundArgs.fundsSource = fundsSource
			refundArgs.amount = amount
			return &gateway.Response{
				Success:     true,
				Transaction: &gateway.TransactionInfo{ID: "654321"},
			}
		},
	}

	uc := NewRefundPaymentUseCase(mockH, mockGW, RefundConfig{FundsSource: "Balance"}, &mockLogger{})
	result, err := uc.Execute(context.Background(), RefundCommand{PaymentToken: "tok-1"})

	require.NoError(t, err)
	require.NotNil(t, result.Outcome)
	assert.Empty(t, result.UserMessage)
	assert.Equal(t, vo.PaymentStateRefunded, result.Outcome.State)
	assert.Equal(t, "123456", result.Outcome.TransactionID)
	assert.Equal(t, "654321", result.Outcome.RefundTransactionID)
	require.NotNil(t, applied)
	assert.Equal(t, vo.PaymentStateRefunded, applied.State)

	assert.Equal(t, "123456", refundArgs.transactionID)
	assert.Equal(t, "Balance", refundArgs.fundsSource, "refunds come from the configured source")
	assert.True(t, refundArgs.amount.Equal(decimal.RequireFromString("25.00")))
}

func TestRefundPaymentUseCase_Execute_NoTransactionID(t *testing.T) {
	lookupCalled := false
	mockGW := &mockGatewayClient{
		GetTransactionFunc: func(ctx context.Context, transactionID string) *gateway.Response {
			lookupCalled = true
			return &gateway.Response{}
		},
	}
	mockH := &mockHost{
		LookupTransactionIDFunc: func(ctx context.Context, paymentToken string) (string, error) {
			return "", nil
		},
	}

	uc := NewRefundPaymentUseCase(mockH, mockGW, RefundConfig{FundsSource: "Balance"}, &mockLogger{})
	result, err := uc.Execute(context.Background(), RefundCommand{PaymentToken: "tok-1"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "No valid transaction ID")
	assert.False(t, lookupCalled, "no outbound call without a transaction id")
}

func TestRefundPaymentUseCase_Execute_TransactionLookupFails(t *testing.T) {
	applyCalled := false
	mockH := &mockHost{
		LookupTransactionIDFunc: func(ctx context.Context, paymentToken string) (string, error) {
			return "123456", nil
		},
		ApplyOutcomeFunc: func(ctx context.Context, result order.PaymentResult) error {
			applyCalled = true
			return nil
		},
	}
	mockGW := &mockGatewayClient{
		GetTransactionFunc: func(ctx context.Context, transactionID string) *gateway.Response {
			return &gateway.Response{Success: false, Message: "Request failed. Server responded with: 500"}
		},
	}

	uc := NewRefundPaymentUseCase(mockH, mockGW, RefundConfig{FundsSource: "Balance"}, &mockLogger{})
	result, err := uc.Execute(context.Background(), RefundCommand{PaymentToken: "tok-1"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeBadGateway))
	assert.False(t, applyCalled, "no state change when details are unknown")
}

func TestRefundPaymentUseCase_Execute_RefundRejected(t *testing.T) {
	var applied *order.PaymentResult
	mockH := &mockHost{
		LookupTransactionIDFunc: func(ctx context.Context, paymentToken string) (string, error) {
			return "123456", nil
		},
		ApplyOutcomeFunc: func(ctx context.Context, result order.PaymentResult) error {
			applied = &result
			return nil
		},
	}
	mockGW := &mockGatewayClient{
		GetTransactionFunc: func(ctx context.Context, transactionID string) *gateway.Response {
			return &gateway.Response{
				Success:     true,
				Transaction: &gateway.TransactionInfo{ID: transactionID, Amount: decimal.RequireFromString("25.00")},
			}
		},
		SubmitRefundFunc: func(ctx context.Context, transactionID, fundsSource string, amount decimal.Decimal) *gateway.Response {
			return &gateway.Response{Success: false, Message: "Invalid PIN"}
		},
	}

	uc := NewRefundPaymentUseCase(mockH, mockGW, RefundConfig{FundsSource: "Balance"}, &mockLogger{})
	result, err := uc.Execute(context.Background(), RefundCommand{PaymentToken: "tok-1"})

	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, vo.PaymentStateRefundFailed, applied.State)
	assert.Equal(t, "Unexpected error has occurred.", result.UserMessage)
	assert.NotContains(t, result.UserMessage, "PIN", "processor details stay out of the user message")
}

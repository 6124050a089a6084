package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
	apperrors "tixgate/internal/shared/errors"
)

func testOrder(t *testing.T, paymentToken, total string) *order.Order {
	t.Helper()
	money, err := vo.NewMoneyFromString(total, "USD")
	require.NoError(t, err)
	ord, err := order.NewOrder(paymentToken, money, []order.LineItem{
		{Name: "General Admission", Description: "One ticket", Price: money, Quantity: 1},
	})
	require.NoError(t, err)
	return ord
}

func testCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		BaseURL:   "https://tickets.example.org",
		EventName: "GopherConf",
		Currency:  "USD",
	}
}

func TestInitiateCheckoutUseCase_Execute_Success(t *testing.T) {
	mockH := &mockHost{
		LookupOrderFunc: func(ctx context.Context, paymentToken string) (*order.Order, error) {
			return testOrder(t, paymentToken, "25.00"), nil
		},
	}
	var gotReq gateway.CheckoutRequest
	mockGW := &mockGatewayClient{
		CreateCheckoutFunc: func(ctx context.Context, req gateway.CheckoutRequest) *gateway.Response {
			gotReq = req
			return &gateway.Response{Success: true, CheckoutID: "abc-123"}
		},
		CheckoutURLFunc: func(checkoutID string) string {
			return "https://uat.dwolla.com/payment/checkout/" + checkoutID
		},
	}

	uc := NewInitiateCheckoutUseCase(mockH, mockGW, testCheckoutConfig(), &mockLogger{})
	result, err := uc.Execute(context.Background(), InitiateCheckoutCommand{PaymentToken: "tok-1"})

	require.NoError(t, err)
	assert.Equal(t, "https://uat.dwolla.com/payment/checkout/abc-123", result.RedirectURL)
	assert.Nil(t, result.Outcome)

	assert.Equal(t, "tok-1", gotReq.PaymentToken)
	assert.Equal(t, "https://tickets.example.org/payments/dwolla/callback?payment_token=tok-1", gotReq.CallbackURL)
	assert.Equal(t, "https://tickets.example.org/payments/dwolla/redirect?payment_token=tok-1", gotReq.RedirectURL)
	require.Len(t, gotReq.Items, 1)
	assert.Equal(t, "GopherConf: General Admission", gotReq.Items[0].Name)
	assert.Equal(t, "25.00", gotReq.Total.Format())
}

func TestInitiateCheckoutUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		currency string
		wantType apperrors.ErrorType
	}{
		{
			name:     "empty payment token",
			token:    "",
			currency: "USD",
			wantType: apperrors.ErrorTypeValidation,
		},
		{
			name:     "unsupported currency",
			token:    "tok-1",
			currency: "EUR",
			wantType: apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testCheckoutConfig()
			cfg.Currency = tt.currency
			uc := NewInitiateCheckoutUseCase(&mockHost{}, &mockGatewayClient{}, cfg, &mockLogger{})

			result, err := uc.Execute(context.Background(), InitiateCheckoutCommand{PaymentToken: tt.token})

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, tt.wantType))
		})
	}
}

func TestInitiateCheckoutUseCase_Execute_OrderNotFound(t *testing.T) {
	mockH := &mockHost{
		LookupOrderFunc: func(ctx context.Context, paymentToken string) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}
	uc := NewInitiateCheckoutUseCase(mockH, &mockGatewayClient{}, testCheckoutConfig(), &mockLogger{})

	result, err := uc.Execute(context.Background(), InitiateCheckoutCommand{PaymentToken: "tok-missing"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestInitiateCheckoutUseCase_Execute_CheckoutFailure(t *testing.T) {
	tests := []struct {
		name      string
		resp      *gateway.Response
		wantState vo.PaymentState
	}{
		{
			name:      "transport failure maps to failed",
			resp:      &gateway.Response{Success: false, Message: "Request failed. Server responded with: 502"},
			wantState: vo.PaymentStateFailed,
		},
		{
			name:      "processor failure result maps through status table",
			resp:      &gateway.Response{Success: false, Result: "Failure", Message: "Invalid application credentials."},
			wantState: vo.PaymentStateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var applied *order.PaymentResult
			mockH := &mockHost{
				LookupOrderFunc: func(ctx context.Context, paymentToken string) (*order.Order, error) {
					return testOrder(t, paymentToken, "25.00"), nil
				},
				ApplyOutcomeFunc: func(ctx context.Context, result order.PaymentResult) error {
					applied = &result
					return nil
				},
			}
			mockGW := &mockGatewayClient{
				CreateCheckoutFunc: func(ctx context.Context, req gateway.CheckoutRequest) *gateway.Response {
					return tt.resp
				},
			}

			uc := NewInitiateCheckoutUseCase(mockH, mockGW, testCheckoutConfig(), &mockLogger{})
			result, err := uc.Execute(context.Background(), InitiateCheckoutCommand{PaymentToken: "tok-1"})

			require.NoError(t, err)
			assert.Empty(t, result.RedirectURL)
			require.NotNil(t, result.Outcome)
			require.NotNil(t, applied)
			assert.Equal(t, tt.wantState, applied.State)
			assert.Equal(t, "tok-1", applied.PaymentToken)
			assert.Equal(t, tt.resp.Message, applied.Message)
		})
	}
}

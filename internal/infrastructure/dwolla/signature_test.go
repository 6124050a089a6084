package dwolla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixgate/internal/application/payment/gateway"
)

func TestSignatureVerifier_VerifyGatewaySignature(t *testing.T) {
	v := NewSignatureVerifier("app-secret")
	valid := v.SignGateway("abc-123", "25.00")

	tests := []struct {
		name       string
		signature  string
		checkoutID string
		amount     string
		wantErr    error
	}{
		{
			name:       "valid signature",
			signature:  valid,
			checkoutID: "abc-123",
			amount:     "25.00",
		},
		{
			name:       "amount normalized to two decimals",
			signature:  valid,
			checkoutID: "abc-123",
			amount:     "25",
		},
		{
			name:       "tampered amount",
			signature:  valid,
			checkoutID: "abc-123",
			amount:     "1.00",
			wantErr:    gateway.ErrSignatureMismatch,
		},
		{
			name:       "tampered checkout id",
			signature:  valid,
			checkoutID: "other-checkout",
			amount:     "25.00",
			wantErr:    gateway.ErrSignatureMismatch,
		},
		{
			name:       "missing signature",
			signature:  "",
			checkoutID: "abc-123",
			amount:     "25.00",
			wantErr:    gateway.ErrMissingSignature,
		},
		{
			name:      "missing checkout id",
			signature: valid,
			amount:    "25.00",
			wantErr:   gateway.ErrMissingCheckoutID,
		},
		{
			name:       "missing amount",
			signature:  valid,
			checkoutID: "abc-123",
			wantErr:    gateway.ErrMissingAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.VerifyGatewaySignature(tt.signature, tt.checkoutID, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSignatureVerifier_VerifyGatewaySignature_KnownVector(t *testing.T) {
	// HMAC-SHA1("abc-123&25.00", "app-secret"), hex encoded.
	v := NewSignatureVerifier("app-secret")
	sig := v.SignGateway("abc-123", "25.00")
	require.Len(t, sig, 40)
	assert.NoError(t, v.VerifyGatewaySignature(sig, "abc-123", "25.00"))
}

func TestSignatureVerifier_VerifyWebhookSignature(t *testing.T) {
	v := NewSignatureVerifier("app-secret")
	body := []byte(`{"Id":"evt-1","Type":"Transaction","Subtype":"Status"}`)
	valid := v.SignBody(body)

	assert.NoError(t, v.VerifyWebhookSignature(body, valid))

	assert.ErrorIs(t, v.VerifyWebhookSignature(body, ""), gateway.ErrMissingSignature)
	assert.ErrorIs(t, v.VerifyWebhookSignature(body, "0000"), gateway.ErrSignatureMismatch)

	tampered := append([]byte{}, body...)
	tampered[0] = ' '
	assert.ErrorIs(t, v.VerifyWebhookSignature(tampered, valid), gateway.ErrSignatureMismatch)

	otherSecret := NewSignatureVerifier("other-secret")
	assert.ErrorIs(t, otherSecret.VerifyWebhookSignature(body, valid), gateway.ErrSignatureMismatch)
}

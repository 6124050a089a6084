package usecases

import (
	"context"
	"encoding/json"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/domain/order"
	apperrors "tixgate/internal/shared/errors"
	"tixgate/internal/shared/logger"
)

// CallbackBody is the server-to-server postback Dwolla sends before
// finalizing a checkout. Amount arrives as a JSON number and is kept
// as its literal text so exact comparison with the order total works.
type CallbackBody struct {
	Signature     string      `json:"Signature"`
	CheckoutID    string      `json:"CheckoutId"`
	Amount        json.Number `json:"Amount"`
	Status        string      `json:"Status"`
	TestMode      bool        `json:"TestMode"`
	Error         string      `json:"Error"`
	OrderID       string      `json:"OrderId"`
	TransactionID json.Number `json:"TransactionId"`
}

type CallbackCommand struct {
	PaymentToken string
	Body         CallbackBody
}

// CallbackResult reports whether the postback was authorized. The
// callback never applies an outcome itself; the signed redirect and
// the webhook carry the state changes.
type CallbackResult struct {
	Authorized bool
	Body       CallbackBody
}

type HandleCallbackUseCase struct {
	host     order.Host
	verifier gateway.SignatureVerifier
	logger   logger.Interface
}

func NewHandleCallbackUseCase(host order.Host, verifier gateway.SignatureVerifier, logger logger.Interface) *HandleCallbackUseCase {
	return &HandleCallbackUseCase{
		host:     host,
		verifier: verifier,
		logger:   logger,
	}
}

func (uc *HandleCallbackUseCase) Execute(ctx context.Context, cmd CallbackCommand) (*CallbackResult, error) {
	if cmd.PaymentToken == "" {
		return nil, apperrors.NewValidationError("empty payment token")
	}
	if cmd.Body.CheckoutID == "" {
		return nil, apperrors.NewValidationError("missing checkout id")
	}

	amount := cmd.Body.Amount.String()
	if err := uc.verifier.VerifyGatewaySignature(cmd.Body.Signature, cmd.Body.CheckoutID, amount); err != nil {
		uc.logger.Warnw("invalid gateway signature on callback",
			"payment_token", cmd.PaymentToken,
			"checkout_id", cmd.Body.CheckoutID,
			"error", err,
		)
		return nil, apperrors.NewUnauthorizedError("invalid gateway signature")
	}

	if cmd.Body.Status != "Completed" {
		uc.logger.Warnw("callback with non-completed status",
			"payment_token", cmd.PaymentToken,
			"checkout_id", cmd.Body.CheckoutID,
			"status", cmd.Body.Status,
			"dwolla_error", cmd.Body.Error,
		)
		return &CallbackResult{Authorized: false, Body: cmd.Body}, nil
	}

	ord, err := uc.host.LookupOrder(ctx, cmd.PaymentToken)
	if err != nil {
		uc.logger.Warnw("callback for unknown order", "payment_token", cmd.PaymentToken, "error", err)
		return nil, apperrors.NewNotFoundError("could not find order")
	}

	if !ord.Total().EqualsAmount(amount) {
		uc.logger.Errorw("callback amount does not match order total",
			"payment_token", cmd.PaymentToken,
			"checkout_id", cmd.Body.CheckoutID,
			"callback_amount", amount,
			"order_total", ord.Total().Format(),
		)
		return nil, apperrors.NewConflictError("amount does not match order total")
	}

	if err := uc.host.VerifyOrderStillValid(ctx, cmd.PaymentToken); err != nil {
		uc.logger.Warnw("order no longer valid at callback time",
			"payment_token", cmd.PaymentToken,
			"checkout_id", cmd.Body.CheckoutID,
			"error", err,
		)
		return nil, apperrors.NewConflictError("order is no longer valid")
	}

	uc.logger.Infow("callback authorized",
		"payment_token", cmd.PaymentToken,
		"checkout_id", cmd.Body.CheckoutID,
		"test_mode", cmd.Body.TestMode,
	)
	return &CallbackResult{Authorized: true, Body: cmd.Body}, nil
}

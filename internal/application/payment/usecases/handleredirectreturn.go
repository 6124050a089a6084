package usecases

import (
	"context"
	"fmt"
	"net/url"
	"path"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
	apperrors "tixgate/internal/shared/errors"
	"tixgate/internal/shared/logger"
)

// RedirectParams are the query parameters Dwolla appends when sending
// the buyer back. A signed return carries signature/checkoutId/amount;
// a user cancel carries only error fields.
type RedirectParams struct {
	Signature        string
	CheckoutID       string
	Amount           string
	Status           string
	Transaction      string
	Postback         string
	Error            string
	ErrorDescription string
	Raw              map[string]string
}

type RedirectReturnCommand struct {
	PaymentToken string
	Params       RedirectParams
}

// RedirectReturnResult carries the applied outcome and, when the buyer
// should land somewhere specific (their access page after a completed
// payment or a false-alarm cancel), a redirect target.
type RedirectReturnResult struct {
	Outcome     *order.PaymentResult
	RedirectURL string
}

type HandleRedirectReturnUseCase struct {
	host     order.Host
	gateway  gateway.Client
	verifier gateway.SignatureVerifier
	baseURL  string
	logger   logger.Interface
}

func NewHandleRedirectReturnUseCase(
	host order.Host,
	gatewayClient gateway.Client,
	verifier gateway.SignatureVerifier,
	baseURL string,
	logger logger.Interface,
) *HandleRedirectReturnUseCase {
	return &HandleRedirectReturnUseCase{
		host:     host,
		gateway:  gatewayClient,
		verifier: verifier,
		baseURL:  baseURL,
		logger:   logger,
	}
}

func (uc *HandleRedirectReturnUseCase) Execute(ctx context.Context, cmd RedirectReturnCommand) (*RedirectReturnResult, error) {
	if cmd.PaymentToken == "" {
		return nil, apperrors.NewValidationError("empty payment token")
	}

	if _, err := uc.host.LookupOrder(ctx, cmd.PaymentToken); err != nil {
		uc.logger.Warnw("redirect return for unknown order", "payment_token", cmd.PaymentToken, "error", err)
		return nil, apperrors.NewNotFoundError("could not find order")
	}

	p := cmd.Params

	switch {
	case p.Signature != "" && p.CheckoutID != "" && p.Amount != "":
		return uc.handleSignedReturn(ctx, cmd.PaymentToken, p)
	case p.Error != "" && p.ErrorDescription == "User Cancelled":
		return uc.handleUserCancel(ctx, cmd.PaymentToken, p)
	default:
		return uc.applyFailure(ctx, cmd.PaymentToken, p)
	}
}

func (uc *HandleRedirectReturnUseCase) handleSignedReturn(ctx context.Context, paymentToken string, p RedirectParams) (*RedirectReturnResult, error) {
	if err := uc.verifier.VerifyGatewaySignature(p.Signature, p.CheckoutID, p.Amount); err != nil {
		uc.logger.Warnw("invalid gateway signature on redirect return",
			"payment_token", paymentToken,
			"checkout_id", p.CheckoutID,
			"error", err,
		)
		outcome := order.PaymentResult{
			PaymentToken: paymentToken,
			State:        vo.PaymentStateFailed,
			Message:      "Error during Off-Site Gateway checkout. Invalid Gateway Signature.",
			Raw:          rawParams(p),
		}
		if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
			return nil, fmt.Errorf("failed to apply outcome: %w", err)
		}
		return &RedirectReturnResult{Outcome: &outcome}, nil
	}

	if p.Status != "Completed" {
		return uc.applyFailure(ctx, paymentToken, p)
	}

	// The redirect parameters are signed but not authoritative for the
	// final status; ask the processor what actually happened.
	transactionID := p.Transaction
	if transactionID == "" {
		// Test-mode transactions report id 1.
		transactionID = "1"
	}

	status := p.Status
	details := uc.gateway.GetTransaction(ctx, transactionID)
	if details.Success && details.Transaction != nil && details.Transaction.Status != "" {
		status = details.Transaction.Status
	}

	if p.Postback == "failure" {
		uc.logger.Warnw("dwolla postback to callback URL failed",
			"payment_token", paymentToken,
			"transaction_id", transactionID,
		)
	}

	state := gateway.MapStatus(status)
	uc.logger.Infow("redirect return resolved",
		"payment_token", paymentToken,
		"transaction_id", transactionID,
		"processor_status", status,
		"state", state,
	)

	outcome := order.PaymentResult{
		PaymentToken:  paymentToken,
		State:         state,
		TransactionID: transactionID,
		Raw:           rawParams(p),
	}
	if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("failed to apply outcome: %w", err)
	}

	result := &RedirectReturnResult{Outcome: &outcome}
	if state == vo.PaymentStateCompleted {
		if att, err := uc.host.LookupAttendeeByToken(ctx, paymentToken); err == nil && att.AccessToken != "" {
			result.RedirectURL = uc.accessURL(att.AccessToken)
		}
	}
	return result, nil
}

// handleUserCancel handles the unsigned cancel leg. A cancel signal
// can be a false alarm: the charge may already have gone through via
// the webhook, in which case the buyer is routed to their tickets and
// nothing is cancelled.
func (uc *HandleRedirectReturnUseCase) handleUserCancel(ctx context.Context, paymentToken string, p RedirectParams) (*RedirectReturnResult, error) {
	att, err := uc.host.LookupAttendeeByToken(ctx, paymentToken)
	if err != nil {
		uc.logger.Warnw("attendees not found for cancelled payment", "payment_token", paymentToken, "error", err)
		return nil, apperrors.NewNotFoundError("attendees not found")
	}

	if att.TransactionID != "" {
		details := uc.gateway.GetTransaction(ctx, att.TransactionID)
		if details.Success && details.Transaction != nil {
			state := gateway.MapStatus(details.Transaction.Status)
			if state == vo.PaymentStatePending || state == vo.PaymentStateCompleted {
				uc.logger.Infow("false alarm on payment cancel, transaction is valid",
					"payment_token", paymentToken,
					"transaction_id", att.TransactionID,
					"processor_status", details.Transaction.Status,
				)
				return &RedirectReturnResult{RedirectURL: uc.accessURL(att.AccessToken)}, nil
			}
		}
	}

	outcome := order.PaymentResult{
		PaymentToken: paymentToken,
		State:        vo.PaymentStateCancelled,
		Raw:          rawParams(p),
	}
	if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("failed to apply outcome: %w", err)
	}
	return &RedirectReturnResult{Outcome: &outcome}, nil
}

func (uc *HandleRedirectReturnUseCase) applyFailure(ctx context.Context, paymentToken string, p RedirectParams) (*RedirectReturnResult, error) {
	message := ""
	if p.ErrorDescription != "" {
		message = fmt.Sprintf("Dwolla error: %s (%s)", p.ErrorDescription, p.Error)
		uc.logger.Warnw("dwolla reported an error on redirect return",
			"payment_token", paymentToken,
			"dwolla_error", p.Error,
			"dwolla_error_description", p.ErrorDescription,
		)
	}

	outcome := order.PaymentResult{
		PaymentToken: paymentToken,
		State:        vo.PaymentStateFailed,
		Message:      message,
		Raw:          rawParams(p),
	}
	if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("failed to apply outcome: %w", err)
	}
	return &RedirectReturnResult{Outcome: &outcome}, nil
}

func (uc *HandleRedirectReturnUseCase) accessURL(accessToken string) string {
	u, err := url.Parse(uc.baseURL)
	if err != nil {
		return ""
	}
	u.Path = path.Join(u.Path, "tickets", "access")
	q := u.Query()
	q.Set("token", accessToken)
	u.RawQuery = q.Encode()
	return u.String()
}

func rawParams(p RedirectParams) map[string]any {
	raw := make(map[string]any, len(p.Raw))
	for k, v := range p.Raw {
		raw[k] = v
	}
	return raw
}

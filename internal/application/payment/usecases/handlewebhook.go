package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/domain/order"
	apperrors "tixgate/internal/shared/errors"
	"tixgate/internal/shared/logger"
)

// WebhookEvent is a Dwolla webhook notification. The top-level Id is
// the transaction id the event refers to. Only transaction status
// events are acted on; everything else is acknowledged and ignored.
type WebhookEvent struct {
	ID          json.Number `json:"Id"`
	Type        string      `json:"Type"`
	Subtype     string      `json:"Subtype"`
	Transaction *struct {
		Status string  `json:"Status"`
		Amount float64 `json:"Amount"`
	} `json:"Transaction"`
}

type WebhookCommand struct {
	// Body is the raw request payload. The signature covers these exact
	// bytes, so verification happens before any parsing.
	Body      []byte
	Signature string
}

type WebhookResult struct {
	Outcome *order.PaymentResult
}

type HandleWebhookUseCase struct {
	host     order.Host
	verifier gateway.SignatureVerifier
	logger   logger.Interface
}

func NewHandleWebhookUseCase(host order.Host, verifier gateway.SignatureVerifier, logger logger.Interface) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		host:     host,
		verifier: verifier,
		logger:   logger,
	}
}

func (uc *HandleWebhookUseCase) Execute(ctx context.Context, cmd WebhookCommand) (*WebhookResult, error) {
	if err := uc.verifier.VerifyWebhookSignature(cmd.Body, cmd.Signature); err != nil {
		uc.logger.Warnw("webhook signature verification failed", "error", err)
		return nil, apperrors.NewUnauthorizedError("invalid webhook signature")
	}

	var event WebhookEvent
	if err := json.Unmarshal(cmd.Body, &event); err != nil {
		uc.logger.Warnw("malformed webhook payload", "error", err)
		return nil, apperrors.NewValidationError("malformed webhook payload")
	}

	if event.Type != "Transaction" || event.Subtype != "Status" || event.Transaction == nil {
		uc.logger.Infow("ignoring webhook event",
			"event_id", event.ID.String(),
			"type", event.Type,
			"subtype", event.Subtype,
		)
		return &WebhookResult{}, nil
	}

	transactionID := event.ID.String()
	if transactionID == "" {
		// Test-mode transactions report id 1.
		transactionID = "1"
	}

	att, err := uc.host.LookupAttendeeByTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			uc.logger.Infow("webhook for unknown transaction, ignoring",
				"transaction_id", transactionID,
				"status", event.Transaction.Status,
			)
			return &WebhookResult{}, nil
		}
		return nil, fmt.Errorf("failed to look up transaction %s: %w", transactionID, err)
	}
	if att.PaymentToken == "" {
		uc.logger.Warnw("attendee without payment token for webhook transaction", "transaction_id", transactionID)
		return &WebhookResult{}, nil
	}

	state := gateway.MapStatus(event.Transaction.Status)
	uc.logger.Infow("webhook transaction status update",
		"transaction_id", transactionID,
		"payment_token", att.PaymentToken,
		"processor_status", event.Transaction.Status,
		"state", state,
	)

	outcome := order.PaymentResult{
		PaymentToken:  att.PaymentToken,
		State:         state,
		TransactionID: transactionID,
		Raw: map[string]any{
			"event_id": transactionID,
			"status":   event.Transaction.Status,
		},
	}
	if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("failed to apply outcome: %w", err)
	}
	return &WebhookResult{Outcome: &outcome}, nil
}

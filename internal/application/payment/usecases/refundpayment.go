package usecases

import (
	"context"
	"fmt"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
	apperrors "tixgate/internal/shared/errors"
	"tixgate/internal/shared/logger"
)

// refundFailureMessage is what the requester sees when a refund does
// not go through. Processor error details stay in the logs.
const refundFailureMessage = "Unexpected error has occurred."

type RefundCommand struct {
	PaymentToken string
}

type RefundResult struct {
	Outcome     *order.PaymentResult
	UserMessage string
}

// RefundConfig names the funding source refunds are paid from. Refunds
// always come from this configured source, never from the transaction
// destination.
type RefundConfig struct {
	FundsSource string
}

type RefundPaymentUseCase struct {
	host    order.Host
	gateway gateway.Client
	config  RefundConfig
	logger  logger.Interface
}

func NewRefundPaymentUseCase(host order.Host, gatewayClient gateway.Client, config RefundConfig, logger logger.Interface) *RefundPaymentUseCase {
	return &RefundPaymentUseCase{
		host:    host,
		gateway: gatewayClient,
		config:  config,
		logger:  logger,
	}
}

func (uc *RefundPaymentUseCase) Execute(ctx context.Context, cmd RefundCommand) (*RefundResult, error) {
	if cmd.PaymentToken == "" {
		return nil, apperrors.NewValidationError("empty payment token")
	}

	transactionID, err := uc.host.LookupTransactionID(ctx, cmd.PaymentToken)
	if err != nil || transactionID == "" {
		uc.logger.Warnw("refund requested without a transaction id",
			"payment_token", cmd.PaymentToken,
			"error", err,
		)
		return nil, apperrors.NewValidationError("No valid transaction ID")
	}

	// The refund amount comes from the processor's own record of the
	// transaction, not from local state.
	details := uc.gateway.GetTransaction(ctx, transactionID)
	if !details.Success || details.Transaction == nil {
		uc.logger.Errorw("could not fetch transaction details for refund",
			"payment_token", cmd.PaymentToken,
			"transaction_id", transactionID,
			"message", details.Message,
		)
		return nil, apperrors.NewBadGatewayError("could not determine transaction details")
	}

	resp := uc.gateway.SubmitRefund(ctx, transactionID, uc.config.FundsSource, details.Transaction.Amount)
	if resp.Success && resp.Transaction != nil && resp.Transaction.ID != "" {
		uc.logger.Infow("refund submitted",
			"payment_token", cmd.PaymentToken,
			"transaction_id", transactionID,
			"refund_transaction_id", resp.Transaction.ID,
		)
		outcome := order.PaymentResult{
			PaymentToken:        cmd.PaymentToken,
			State:               vo.PaymentStateRefunded,
			TransactionID:       transactionID,
			RefundTransactionID: resp.Transaction.ID,
		}
		if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
			return nil, fmt.Errorf("failed to apply outcome: %w", err)
		}
		return &RefundResult{Outcome: &outcome}, nil
	}

	uc.logger.Errorw("refund failed",
		"payment_token", cmd.PaymentToken,
		"transaction_id", transactionID,
		"message", resp.Message,
	)
	outcome := order.PaymentResult{
		PaymentToken:  cmd.PaymentToken,
		State:         vo.PaymentStateRefundFailed,
		TransactionID: transactionID,
		Message:       resp.Message,
	}
	if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("failed to apply outcome: %w", err)
	}
	return &RefundResult{Outcome: &outcome, UserMessage: refundFailureMessage}, nil
}

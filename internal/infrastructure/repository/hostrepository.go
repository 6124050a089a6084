package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tixgate/internal/domain/order"
	vo "tixgate/internal/domain/order/valueobjects"
	"tixgate/internal/infrastructure/persistence/mappers"
	"tixgate/internal/infrastructure/persistence/models"
	"tixgate/internal/shared/goroutine"
	"tixgate/internal/shared/logger"
)

// ReceiptNotifier is told when a payment first reaches completed.
type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, attendee *order.Attendee, o *order.Order) error
}

// HostRepository is the gorm-backed order.Host. ApplyOutcome uses
// guarded updates so concurrent events for the same token cannot
// regress a settled payment.
type HostRepository struct {
	db       *gorm.DB
	notifier ReceiptNotifier
	logger   logger.Interface
}

var _ order.Host = (*HostRepository)(nil)

func NewHostRepository(db *gorm.DB, notifier ReceiptNotifier, logger logger.Interface) *HostRepository {
	return &HostRepository{
		db:       db,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateOrder stores a new order with its attendee record, generating
// the payment and access tokens.
func (r *HostRepository) CreateOrder(ctx context.Context, o *order.Order, attendee *order.Attendee) (*order.Attendee, error) {
	model, err := mappers.OrderToModel(o)
	if err != nil {
		return nil, err
	}

	attendeeModel := &models.AttendeeModel{
		PaymentToken: o.PaymentToken(),
		AccessToken:  uuid.NewString(),
		Email:        attendee.Email,
		FirstName:    attendee.FirstName,
		LastName:     attendee.LastName,
		PaymentState: vo.PaymentStatePending.String(),
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.Create(attendeeModel).Error; err != nil {
			return fmt.Errorf("failed to create attendee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mappers.AttendeeToDomain(attendeeModel), nil
}

func (r *HostRepository) LookupOrder(ctx context.Context, paymentToken string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("payment_token = ?", paymentToken).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return mappers.OrderToDomain(&model)
}

func (r *HostRepository) LookupAttendeeByToken(ctx context.Context, paymentToken string) (*order.Attendee, error) {
	var model models.AttendeeModel
	if err := r.db.WithContext(ctx).Where("payment_token = ?", paymentToken).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attendee: %w", err)
	}
	return mappers.AttendeeToDomain(&model), nil
}

func (r *HostRepository) LookupAttendeeByTransaction(ctx context.Context, transactionID string) (*order.Attendee, error) {
	var model models.AttendeeModel
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attendee by transaction: %w", err)
	}
	return mappers.AttendeeToDomain(&model), nil
}

func (r *HostRepository) LookupTransactionID(ctx context.Context, paymentToken string) (string, error) {
	attendee, err := r.LookupAttendeeByToken(ctx, paymentToken)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return attendee.TransactionID, nil
}

// ApplyOutcome records a payment result. Re-applying the current state
// is a no-op; a settled payment is never moved back to pending or
// cancelled. The guard runs inside the UPDATE itself, so concurrent
// events for the same token race safely.
func (r *HostRepository) ApplyOutcome(ctx context.Context, result order.PaymentResult) error {
	if !result.State.IsValid() {
		return fmt.Errorf("invalid payment state %q", result.State)
	}

	var becameCompleted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.AttendeeModel
		if err := tx.Where("payment_token = ?", result.PaymentToken).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return order.ErrNotFound
			}
			return fmt.Errorf("failed to load attendee: %w", err)
		}

		currentState := vo.PaymentState(current.PaymentState)
		if currentState == result.State {
			// Duplicate delivery of the same outcome.
			return nil
		}
		if !currentState.CanTransitionTo(result.State) {
			r.logger.Warnw("outcome would regress a settled payment, ignored",
				"payment_token", result.PaymentToken,
				"current_state", currentState,
				"new_state", result.State,
			)
			return nil
		}

		updates := map[string]any{
			"payment_state":   result.State.String(),
			"payment_message": result.Message,
		}
		if result.TransactionID != "" {
			updates["transaction_id"] = result.TransactionID
		}
		if result.RefundTransactionID != "" {
			updates["refund_transaction_id"] = result.RefundTransactionID
		}

		// Re-assert the guard in the UPDATE so a concurrent writer
		// cannot settle the payment between the read and the write.
		res := tx.Model(&models.AttendeeModel{}).
			Where("payment_token = ? AND payment_state = ?", result.PaymentToken, current.PaymentState).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update attendee: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			r.logger.Warnw("lost outcome race, leaving state untouched",
				"payment_token", result.PaymentToken,
				"new_state", result.State,
			)
			return nil
		}

		becameCompleted = result.State == vo.PaymentStateCompleted
		return nil
	})
	if err != nil {
		return err
	}

	if becameCompleted && r.notifier != nil {
		r.sendReceipt(result.PaymentToken)
	}
	return nil
}

func (r *HostRepository) VerifyOrderStillValid(ctx context.Context, paymentToken string) error {
	attendee, err := r.LookupAttendeeByToken(ctx, paymentToken)
	if err != nil {
		return err
	}
	if attendee.PaymentState.IsSettled() {
		return fmt.Errorf("order in state %s can no longer be charged", attendee.PaymentState)
	}
	return nil
}

func (r *HostRepository) sendReceipt(paymentToken string) {
	goroutine.SafeGo(r.logger, "send-receipt", func() {
		ctx := context.Background()

		attendee, err := r.LookupAttendeeByToken(ctx, paymentToken)
		if err != nil {
			r.logger.Warnw("receipt skipped, attendee lookup failed", "payment_token", paymentToken, "error", err)
			return
		}
		o, err := r.LookupOrder(ctx, paymentToken)
		if err != nil {
			r.logger.Warnw("receipt skipped, order lookup failed", "payment_token", paymentToken, "error", err)
			return
		}
		if err := r.notifier.SendReceipt(ctx, attendee, o); err != nil {
			r.logger.Errorw("failed to send receipt", "payment_token", paymentToken, "error", err)
		}
	})
}

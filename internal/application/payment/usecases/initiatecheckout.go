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

// supportedCurrencies is the set of currencies the Dwolla off-site
// gateway can charge in.
var supportedCurrencies = map[string]bool{
	"USD": true,
}

// CheckoutConfig holds the host-facing settings checkout initiation
// needs to build URLs and item labels.
type CheckoutConfig struct {
	// BaseURL is the externally reachable base URL of this service.
	BaseURL string
	// EventName prefixes every line item name on the hosted checkout.
	EventName string
	// Currency is the host's configured ticket currency.
	Currency string
}

type InitiateCheckoutCommand struct {
	PaymentToken string
}

// InitiateCheckoutResult is either a redirect to the hosted payment
// page or an already-applied terminal outcome, never both.
type InitiateCheckoutResult struct {
	RedirectURL string
	Outcome     *order.PaymentResult
}

type InitiateCheckoutUseCase struct {
	host    order.Host
	gateway gateway.Client
	config  CheckoutConfig
	logger  logger.Interface
}

func NewInitiateCheckoutUseCase(
	host order.Host,
	gatewayClient gateway.Client,
	config CheckoutConfig,
	logger logger.Interface,
) *InitiateCheckoutUseCase {
	return &InitiateCheckoutUseCase{
		host:    host,
		gateway: gatewayClient,
		config:  config,
		logger:  logger,
	}
}

func (uc *InitiateCheckoutUseCase) Execute(ctx context.Context, cmd InitiateCheckoutCommand) (*InitiateCheckoutResult, error) {
	if cmd.PaymentToken == "" {
		return nil, apperrors.NewValidationError("payment token is required")
	}

	// A non-USD currency means the host offered this gateway by
	// mistake; that is a configuration fault, not a payment failure.
	if !supportedCurrencies[uc.config.Currency] {
		return nil, apperrors.NewInternalError(
			"currency not supported by the dwolla gateway",
			fmt.Sprintf("currency %q", uc.config.Currency),
		)
	}

	ord, err := uc.host.LookupOrder(ctx, cmd.PaymentToken)
	if err != nil {
		uc.logger.Warnw("order not found for checkout", "payment_token", cmd.PaymentToken, "error", err)
		return nil, apperrors.NewNotFoundError("could not find order")
	}

	req := gateway.CheckoutRequest{
		PaymentToken: cmd.PaymentToken,
		CallbackURL:  uc.actionURL("callback", cmd.PaymentToken),
		RedirectURL:  uc.actionURL("redirect", cmd.PaymentToken),
		Total:        ord.Total(),
		Items:        uc.labeledItems(ord.Items()),
	}

	resp := uc.gateway.CreateCheckout(ctx, req)

	if resp.Success && resp.CheckoutID != "" {
		uc.logger.Infow("checkout created",
			"payment_token", cmd.PaymentToken,
			"checkout_id", resp.CheckoutID,
		)
		return &InitiateCheckoutResult{
			RedirectURL: uc.gateway.CheckoutURL(resp.CheckoutID),
		}, nil
	}

	// Checkout creation failed, either at the transport level or with
	// a processor result code. Either way the attempt is terminal.
	state := vo.PaymentStateFailed
	if resp.Result != "" {
		state = gateway.MapStatus(resp.Result)
	}

	uc.logger.Errorw("error requesting dwolla checkout",
		"payment_token", cmd.PaymentToken,
		"result", resp.Result,
		"message", resp.Message,
	)

	outcome := order.PaymentResult{
		PaymentToken: cmd.PaymentToken,
		State:        state,
		Message:      resp.Message,
		Raw:          map[string]any{"raw": string(resp.Raw)},
	}
	if err := uc.host.ApplyOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("failed to apply checkout failure: %w", err)
	}

	return &InitiateCheckoutResult{Outcome: &outcome}, nil
}

// actionURL builds the URL Dwolla will hit for a given action,
// embedding the payment token so the return leg can correlate.
func (uc *InitiateCheckoutUseCase) actionURL(action, paymentToken string) string {
	u, err := url.Parse(uc.config.BaseURL)
	if err != nil {
		// A broken base URL surfaces as a processor-side rejection of
		// the checkout request; nothing sensible can be built here.
		return ""
	}
	u.Path = path.Join(u.Path, "payments", "dwolla", action)
	q := u.Query()
	q.Set("payment_token", paymentToken)
	u.RawQuery = q.Encode()
	return u.String()
}

// labeledItems prefixes item names with the event name the way the
// hosted checkout displays them.
func (uc *InitiateCheckoutUseCase) labeledItems(items []order.LineItem) []order.LineItem {
	eventName := uc.config.EventName
	if eventName == "" {
		eventName = "Event"
	}
	labeled := make([]order.LineItem, len(items))
	for i, item := range items {
		item.Name = fmt.Sprintf("%s: %s", eventName, item.Name)
		labeled[i] = item
	}
	return labeled
}

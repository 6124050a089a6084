package dwolla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"tixgate/internal/application/payment/gateway"
	"tixgate/internal/shared/config"
	"tixgate/internal/shared/logger"
)

const (
	productionBaseURL = "https://www.dwolla.com/"
	sandboxBaseURL    = "https://uat.dwolla.com/"

	connectTimeout = 5 * time.Second
	requestTimeout = 5 * time.Second

	// maxResponseSize caps how much of a gateway reply is read (1MB).
	maxResponseSize = 1 << 20
)

// Client talks to Dwolla's off-site gateway and REST endpoints. Every
// failure, transport or processor, comes back as a normalized
// gateway.Response with Success=false.
type Client struct {
	cfg        config.DwollaConfig
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

var _ gateway.Client = (*Client)(nil)

// ClientOption adjusts a Client at construction time.
type ClientOption func(*Client)

// WithBaseURL overrides the gateway base URL. Used by tests to point
// the client at a local server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func NewClient(cfg config.DwollaConfig, logger logger.Interface, opts ...ClientOption) *Client {
	baseURL := productionBaseURL
	if cfg.Sandbox {
		baseURL = sandboxBaseURL
	}

	c := &Client{
		cfg:     cfg,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
			},
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckoutURL returns the hosted payment page for a checkout id.
func (c *Client) CheckoutURL(checkoutID string) string {
	return c.baseURL + "payment/checkout/" + url.PathEscape(checkoutID)
}

func (c *Client) CreateCheckout(ctx context.Context, req gateway.CheckoutRequest) *gateway.Response {
	items := make([]orderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderItem{
			Name:        truncateItemField(item.Name),
			Description: truncateItemField(item.Description),
			Price:       json.Number(item.Price.Format()),
			Quantity:    item.Quantity,
		})
	}

	body := checkoutRequest{
		Key:                      c.cfg.APIKey,
		Secret:                   c.cfg.APISecret,
		Callback:                 req.CallbackURL,
		Redirect:                 req.RedirectURL,
		AllowFundingSources:      c.cfg.AllowFundingSources,
		AdditionalFundingSources: c.cfg.AdditionalFundingSources,
		AllowGuestCheckout:       c.cfg.AllowGuestCheckout,
		AssumeCosts:              c.cfg.AssumeCosts,
		Test:                     c.cfg.Test,
		OrderID:                  req.PaymentToken,
		PurchaseOrder: purchaseOrder{
			DestinationID: c.cfg.DestinationID,
			Shipping:      json.Number("0"),
			Tax:           json.Number("0"),
			Total:         json.Number(req.Total.Format()),
			OrderItems:    items,
		},
	}

	raw, resp := c.post(ctx, "payment/request", body)
	if resp != nil {
		return resp
	}

	var parsed checkoutResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.logger.Errorw("unparseable checkout response", "error", err)
		return transportFailure("invalid response from payment gateway", raw)
	}

	if parsed.Result != "Success" || parsed.CheckoutID == "" {
		return &gateway.Response{
			Success: false,
			Result:  parsed.Result,
			Message: parsed.Message,
			Raw:     raw,
		}
	}

	return &gateway.Response{
		Success:    true,
		CheckoutID: parsed.CheckoutID,
		Result:     parsed.Result,
		Raw:        raw,
	}
}

func (c *Client) GetTransaction(ctx context.Context, transactionID string) *gateway.Response {
	endpoint := fmt.Sprintf("oauth/rest/transactions/%s?oauth_token=%s",
		url.PathEscape(transactionID), url.QueryEscape(c.cfg.OAuthToken))

	raw, resp := c.get(ctx, endpoint)
	if resp != nil {
		return resp
	}

	envelope, resp := parseEnvelope(raw)
	if resp != nil {
		return resp
	}

	var payload transactionPayload
	if err := json.Unmarshal(envelope.Response, &payload); err != nil {
		c.logger.Errorw("unparseable transaction payload", "transaction_id", transactionID, "error", err)
		return transportFailure("invalid response from payment gateway", raw)
	}

	amount, err := decimal.NewFromString(payload.Amount.String())
	if err != nil {
		amount = decimal.Zero
	}

	return &gateway.Response{
		Success: true,
		Message: envelope.Message,
		Transaction: &gateway.TransactionInfo{
			ID:            payload.ID.String(),
			Status:        payload.Status,
			Amount:        amount,
			DestinationID: payload.DestinationID,
		},
		Raw: raw,
	}
}

func (c *Client) SubmitRefund(ctx context.Context, transactionID, fundsSource string, amount decimal.Decimal) *gateway.Response {
	body := refundRequest{
		OAuthToken:    c.cfg.OAuthToken,
		PIN:           c.cfg.PIN,
		TransactionID: transactionID,
		FundsSource:   fundsSource,
		Amount:        json.Number(amount.StringFixed(2)),
	}

	raw, resp := c.post(ctx, "oauth/rest/transactions/refund", body)
	if resp != nil {
		return resp
	}

	envelope, resp := parseEnvelope(raw)
	if resp != nil {
		return resp
	}

	var payload refundPayload
	if err := json.Unmarshal(envelope.Response, &payload); err != nil {
		c.logger.Errorw("unparseable refund payload", "transaction_id", transactionID, "error", err)
		return transportFailure("invalid response from payment gateway", raw)
	}

	refundAmount, err := decimal.NewFromString(payload.Amount.String())
	if err != nil {
		refundAmount = amount
	}

	return &gateway.Response{
		Success: true,
		Message: envelope.Message,
		Transaction: &gateway.TransactionInfo{
			ID:     payload.TransactionID.String(),
			Amount: refundAmount,
		},
		Raw: raw,
	}
}

func (c *Client) post(ctx context.Context, endpoint string, body any) ([]byte, *gateway.Response) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, transportFailure(fmt.Sprintf("failed to encode request: %v", err), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, transportFailure(fmt.Sprintf("failed to build request: %v", err), nil)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, *gateway.Response) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, transportFailure(fmt.Sprintf("failed to build request: %v", err), nil)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, *gateway.Response) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("dwolla request failed", "url", req.URL.Path, "error", err)
		return nil, transportFailure(fmt.Sprintf("request failed: %v", err), nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, transportFailure(fmt.Sprintf("failed to read response: %v", err), nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Errorw("dwolla responded with an error status",
			"url", req.URL.Path,
			"status", resp.StatusCode,
		)
		return nil, transportFailure(fmt.Sprintf("Request failed. Server responded with: %d", resp.StatusCode), raw)
	}

	return raw, nil
}

func parseEnvelope(raw []byte) (*restEnvelope, *gateway.Response) {
	var envelope restEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, transportFailure("invalid response from payment gateway", raw)
	}
	if !envelope.Success {
		return nil, &gateway.Response{
			Success: false,
			Message: envelope.Message,
			Raw:     raw,
		}
	}
	return &envelope, nil
}

func transportFailure(message string, raw []byte) *gateway.Response {
	return &gateway.Response{
		Success: false,
		Message: message,
		Raw:     raw,
	}
}

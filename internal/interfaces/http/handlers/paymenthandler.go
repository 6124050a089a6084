package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentUsecases "tixgate/internal/application/payment/usecases"
	apperrors "tixgate/internal/shared/errors"
	"tixgate/internal/shared/logger"
	"tixgate/internal/shared/utils"
)

// maxWebhookBody caps notification payloads (256KB).
const maxWebhookBody = 256 << 10

type PaymentHandler struct {
	initiateCheckoutUC *paymentUsecases.InitiateCheckoutUseCase
	redirectReturnUC   *paymentUsecases.HandleRedirectReturnUseCase
	callbackUC         *paymentUsecases.HandleCallbackUseCase
	webhookUC          *paymentUsecases.HandleWebhookUseCase
	refundUC           *paymentUsecases.RefundPaymentUseCase
	logger             logger.Interface
}

func NewPaymentHandler(
	initiateCheckoutUC *paymentUsecases.InitiateCheckoutUseCase,
	redirectReturnUC *paymentUsecases.HandleRedirectReturnUseCase,
	callbackUC *paymentUsecases.HandleCallbackUseCase,
	webhookUC *paymentUsecases.HandleWebhookUseCase,
	refundUC *paymentUsecases.RefundPaymentUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		initiateCheckoutUC: initiateCheckoutUC,
		redirectReturnUC:   redirectReturnUC,
		callbackUC:         callbackUC,
		webhookUC:          webhookUC,
		refundUC:           refundUC,
		logger:             logger,
	}
}

type CheckoutRequest struct {
	PaymentToken string `json:"payment_token" binding:"required"`
}

type CheckoutResponse struct {
	RedirectURL string `json:"redirect_url,omitempty"`
	State       string `json:"state,omitempty"`
}

// @Summary		Start a Dwolla checkout
// @Description	Creates a hosted checkout for a pending order and returns the payment page URL
// @Tags			payments
// @Accept			json
// @Produce		json
// @Param			checkout	body		CheckoutRequest							true	"Checkout data"
// @Success		200			{object}	utils.APIResponse{data=CheckoutResponse}	"Checkout created"
// @Failure		400			{object}	utils.APIResponse							"Bad request"
// @Failure		404			{object}	utils.APIResponse							"Order not found"
// @Router			/payments/dwolla/checkout [post]
func (h *PaymentHandler) InitiateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.initiateCheckoutUC.Execute(c.Request.Context(), paymentUsecases.InitiateCheckoutCommand{
		PaymentToken: req.PaymentToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := CheckoutResponse{RedirectURL: result.RedirectURL}
	if result.Outcome != nil {
		resp.State = result.Outcome.State.String()
	}
	utils.SuccessResponse(c, http.StatusOK, "checkout created", resp)
}

// @Summary		Dwolla redirect return
// @Description	Handles the buyer coming back from the hosted checkout, signed or cancelled
// @Tags			payments
// @Produce		json
// @Param			payment_token	query		string				true	"Payment token"
// @Success		302				{string}	string				"Redirect to the attendee access page"
// @Success		200				{object}	utils.APIResponse	"Outcome applied"
// @Failure		404				{object}	utils.APIResponse	"Order not found"
// @Router			/payments/dwolla/redirect [get]
func (h *PaymentHandler) HandleRedirect(c *gin.Context) {
	params := paymentUsecases.RedirectParams{
		Signature:        c.Query("signature"),
		CheckoutID:       c.Query("checkoutId"),
		Amount:           c.Query("amount"),
		Status:           c.Query("status"),
		Transaction:      c.Query("transaction"),
		Postback:         c.Query("postback"),
		Error:            c.Query("error"),
		ErrorDescription: c.Query("error_description"),
		Raw:              map[string]string{},
	}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params.Raw[key] = values[0]
		}
	}

	result, err := h.redirectReturnUC.Execute(c.Request.Context(), paymentUsecases.RedirectReturnCommand{
		PaymentToken: c.Query("payment_token"),
		Params:       params,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.RedirectURL != "" {
		c.Redirect(http.StatusFound, result.RedirectURL)
		return
	}

	resp := CheckoutResponse{}
	if result.Outcome != nil {
		resp.State = result.Outcome.State.String()
	}
	utils.SuccessResponse(c, http.StatusOK, "payment processed", resp)
}

// @Summary		Dwolla server-to-server callback
// @Description	Authorizes or rejects a checkout right before Dwolla finalizes the charge
// @Tags			payments
// @Accept			json
// @Produce		json
// @Param			payment_token	query		string				true	"Payment token"
// @Success		200				{object}	utils.APIResponse	"Callback authorized"
// @Failure		401				{object}	utils.APIResponse	"Invalid signature"
// @Failure		409				{object}	utils.APIResponse	"Order conflict"
// @Router			/payments/dwolla/callback [post]
func (h *PaymentHandler) HandleCallback(c *gin.Context) {
	var body paymentUsecases.CallbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid callback payload")
		return
	}

	result, err := h.callbackUC.Execute(c.Request.Context(), paymentUsecases.CallbackCommand{
		PaymentToken: c.Query("payment_token"),
		Body:         body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "callback processed", gin.H{"authorized": result.Authorized})
}

// @Summary		Dwolla webhook notifications
// @Description	Applies asynchronous transaction status updates
// @Tags			payments
// @Accept			json
// @Success		200	{string}	string	"Acknowledged"
// @Failure		401	{string}	string	"Invalid signature"
// @Router			/payments/dwolla/notify [post]
func (h *PaymentHandler) HandleNotify(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	_, err = h.webhookUC.Execute(c.Request.Context(), paymentUsecases.WebhookCommand{
		Body:      body,
		Signature: c.GetHeader("X-Dwolla-Signature"),
	})
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeUnauthorized) {
			c.Status(http.StatusUnauthorized)
			return
		}
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			c.Status(http.StatusBadRequest)
			return
		}
		h.logger.Errorw("webhook processing failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

type RefundRequest struct {
	PaymentToken string `json:"payment_token" binding:"required"`
}

type RefundResponse struct {
	State               string `json:"state"`
	RefundTransactionID string `json:"refund_transaction_id,omitempty"`
	Message             string `json:"message,omitempty"`
}

// @Summary		Refund a payment
// @Description	Refunds a completed payment from the configured funding source
// @Tags			payments
// @Accept			json
// @Produce		json
// @Param			refund	body		RefundRequest							true	"Refund data"
// @Success		200		{object}	utils.APIResponse{data=RefundResponse}	"Refund processed"
// @Failure		400		{object}	utils.APIResponse						"No valid transaction"
// @Failure		502		{object}	utils.APIResponse						"Processor unreachable"
// @Router			/payments/dwolla/refund [post]
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.refundUC.Execute(c.Request.Context(), paymentUsecases.RefundCommand{
		PaymentToken: req.PaymentToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := RefundResponse{Message: result.UserMessage}
	if result.Outcome != nil {
		resp.State = result.Outcome.State.String()
		resp.RefundTransactionID = result.Outcome.RefundTransactionID
	}
	utils.SuccessResponse(c, http.StatusOK, "refund processed", resp)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"tixgate/internal/interfaces/http/handlers"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
}

// SetupPaymentRoutes configures the Dwolla gateway routes. The
// redirect, callback and notify legs are hit by Dwolla itself and
// carry their own authentication via signatures.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	dwolla := engine.Group("/payments/dwolla")
	{
		dwolla.POST("/checkout", cfg.PaymentHandler.InitiateCheckout)
		dwolla.GET("/redirect", cfg.PaymentHandler.HandleRedirect)
		dwolla.POST("/callback", cfg.PaymentHandler.HandleCallback)
		dwolla.POST("/notify", cfg.PaymentHandler.HandleNotify)
		dwolla.POST("/refund", cfg.PaymentHandler.RefundPayment)
	}
}

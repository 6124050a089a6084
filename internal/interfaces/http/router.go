package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentUsecases "tixgate/internal/application/payment/usecases"
	"tixgate/internal/infrastructure/config"
	"tixgate/internal/infrastructure/dwolla"
	"tixgate/internal/infrastructure/email"
	"tixgate/internal/infrastructure/repository"
	"tixgate/internal/interfaces/http/handlers"
	"tixgate/internal/interfaces/http/middleware"
	"tixgate/internal/interfaces/http/routes"
	"tixgate/internal/shared/logger"
)

// NewRouter wires the full HTTP surface: repositories, the Dwolla
// client and verifier, the payment usecases and their routes.
func NewRouter(cfg *config.Config, db *gorm.DB, log logger.Interface) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger(log.Named("http")))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	notifier := email.NewReceiptSender(cfg.Email, cfg.Tickets.EventName, log.Named("email"))
	host := repository.NewHostRepository(db, notifier, log.Named("host"))

	gatewayClient := dwolla.NewClient(cfg.Dwolla, log.Named("dwolla"))
	verifier := dwolla.NewSignatureVerifier(cfg.Dwolla.APISecret)

	checkoutCfg := paymentUsecases.CheckoutConfig{
		BaseURL:   cfg.Tickets.BaseURL,
		EventName: cfg.Tickets.EventName,
		Currency:  cfg.Tickets.Currency,
	}

	paymentHandler := handlers.NewPaymentHandler(
		paymentUsecases.NewInitiateCheckoutUseCase(host, gatewayClient, checkoutCfg, log.Named("checkout")),
		paymentUsecases.NewHandleRedirectReturnUseCase(host, gatewayClient, verifier, cfg.Tickets.BaseURL, log.Named("redirect")),
		paymentUsecases.NewHandleCallbackUseCase(host, verifier, log.Named("callback")),
		paymentUsecases.NewHandleWebhookUseCase(host, verifier, log.Named("webhook")),
		paymentUsecases.NewRefundPaymentUseCase(host, gatewayClient, paymentUsecases.RefundConfig{
			FundsSource: cfg.Dwolla.RefundsSource,
		}, log.Named("refund")),
		log.Named("payment_handler"),
	)

	routes.SetupPaymentRoutes(engine, &routes.PaymentRouteConfig{
		PaymentHandler: paymentHandler,
	})

	return engine
}

package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"tixgate/internal/domain/order"
	"tixgate/internal/shared/config"
	"tixgate/internal/shared/logger"
	"tixgate/internal/shared/utils"
)

// ReceiptSender mails a purchase receipt once a payment completes.
// With an empty SMTP host it silently drops every send.
type ReceiptSender struct {
	cfg       config.EmailConfig
	eventName string
	dialer    *gomail.Dialer
	logger    logger.Interface
}

func NewReceiptSender(cfg config.EmailConfig, eventName string, logger logger.Interface) *ReceiptSender {
	s := &ReceiptSender{
		cfg:       cfg,
		eventName: eventName,
		logger:    logger,
	}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *ReceiptSender) SendReceipt(ctx context.Context, attendee *order.Attendee, o *order.Order) error {
	if s.dialer == nil {
		s.logger.Debugw("receipt sending disabled, no smtp host configured")
		return nil
	}
	if attendee.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Your %s receipt", s.eventName)

	var lines []string
	for _, item := range o.Items() {
		lines = append(lines, fmt.Sprintf("%d x %s  %s", item.Quantity, item.Name, item.Price.Format()))
	}

	plainBody := fmt.Sprintf(`Hi %s,

Your payment for %s was received.

%s

Total: %s

Keep this email for your records.
`, attendee.FirstName, s.eventName, strings.Join(lines, "\n"), o.Total().String())

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", attendee.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt: %w", err)
	}

	s.logger.Infow("receipt sent",
		"email", utils.MaskEmail(attendee.Email),
		"payment_token", attendee.PaymentToken,
	)
	return nil
}

package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"

	"kalini_server/structs"
	"kalini_server/structs/tables"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendVerificationEmail sends the email-address confirmation link for a
// fresh registration
func (es *EmailService) SendVerificationEmail(user *tables.User, verification *tables.EmailVerification) error {
	verificationLink := fmt.Sprintf(
		"%s/auth/verify-email?token=%s&user_id=%s",
		es.cfg.Server.ServerURL, verification.Token, user.Id.String(),
	)
	expiryMinutes := time.Until(verification.ExpiresAt).Minutes()

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Georgia, serif; line-height: 1.6; color: #2b2b2b; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #8b2942; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #faf6f2; }
				.button { display: inline-block; padding: 15px 30px; background-color: #8b2942; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Verify your email address</h1>
				</div>
				<div class="content">
					<p>Namaste %s,</p>
					<p>Welcome to Kalini. Please confirm your email address to finish setting up your account:</p>
					<p style="text-align: center;">
						<a href="%s" class="button">Verify Email</a>
					</p>
					<p>This link expires in %.0f minutes.</p>
					<p>If you did not create an account, you can safely ignore this email.</p>
				</div>
				<div class="footer">
					<p>Kalini &bull; Handwoven ethnic wear</p>
				</div>
			</div>
		</body>
		</html>
	`, user.Username, verificationLink, expiryMinutes)

	return es.SendEmail([]string{user.Email}, "Verify your email address", body)
}

// SendOrderConfirmation sends the order summary after a successful checkout.
// Called on its own goroutine; failures are logged, never surfaced to the
// customer.
func (es *EmailService) SendOrderConfirmation(email, name string, order *tables.Order, lines []tables.OrderLine) {
	var rows strings.Builder
	for _, line := range lines {
		rows.WriteString(fmt.Sprintf(`
				<tr>
					<td>%s (%s)</td>
					<td>%s / %s</td>
					<td style="text-align: center;">%d</td>
					<td style="text-align: right;">%s</td>
				</tr>`,
			line.ProductName, line.ProductCode,
			line.Size, line.Colour,
			line.Quantity,
			formatRupees(line.LineTotal),
		))
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Georgia, serif; line-height: 1.6; color: #2b2b2b; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #8b2942; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #faf6f2; }
				table { width: 100%%; border-collapse: collapse; }
				th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
				.total { font-weight: bold; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Order %s confirmed</h1>
				</div>
				<div class="content">
					<p>Namaste %s,</p>
					<p>Thank you for your order. Here is what you picked:</p>
					<table>
						<tr><th>Item</th><th>Size / Colour</th><th>Qty</th><th style="text-align: right;">Amount</th></tr>
						%s
						<tr class="total"><td colspan="3">Total</td><td style="text-align: right;">%s</td></tr>
					</table>
					<p>We will email you again when your order ships.</p>
				</div>
				<div class="footer">
					<p>Kalini &bull; Handwoven ethnic wear</p>
				</div>
			</div>
		</body>
		</html>
	`, order.OrderNumber, name, rows.String(), formatRupees(order.TotalCents))

	if err := es.SendEmail([]string{email}, fmt.Sprintf("Your Kalini order %s", order.OrderNumber), body); err != nil {
		es.logger.Error("Failed to send order confirmation",
			gecho.Field("error", err),
			gecho.Field("order_number", order.OrderNumber),
		)
	}
}

// SendNewsletterWelcome greets a fresh newsletter subscriber. Called on its
// own goroutine; failures are logged, never surfaced.
func (es *EmailService) SendNewsletterWelcome(email string) {
	body := `
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Georgia, serif; line-height: 1.6; color: #2b2b2b; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #8b2942; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #faf6f2; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Welcome to the Kalini newsletter</h1>
				</div>
				<div class="content">
					<p>Namaste,</p>
					<p>Thank you for subscribing. You will be the first to hear about new
					collections, festive edits and handloom stories from our weavers.</p>
					<p>You can unsubscribe at any time.</p>
				</div>
				<div class="footer">
					<p>Kalini &bull; Handwoven ethnic wear</p>
				</div>
			</div>
		</body>
		</html>
	`

	if err := es.SendEmail([]string{email}, "Welcome to the Kalini newsletter", body); err != nil {
		es.logger.Error("Failed to send newsletter welcome",
			gecho.Field("error", err),
			gecho.Field("to", email),
		)
	}
}

// formatRupees renders a paise amount as a rupee string, e.g. 249900 -> ₹2499.00
func formatRupees(paise uint64) string {
	return fmt.Sprintf("₹%d.%02d", paise/100, paise%100)
}

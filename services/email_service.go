package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"servicelink-server/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// EmailService delivers transactional emails through the Resend HTTP API
type EmailService struct {
	client *http.Client
}

// NewEmailService creates a new email service
func NewEmailService() *EmailService {
	return &EmailService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an API key is configured. When disabled, emails
// stay queued in the outbox and are never attempted.
func (es *EmailService) Enabled() bool {
	return config.AppConfig.Email.ResendAPIKey != ""
}

// Send delivers a single HTML email. The caller records failures; nothing
// here retries.
func (es *EmailService) Send(to, subject, html string) error {
	payload := map[string]interface{}{
		"from":    config.AppConfig.Email.FromAddress,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.Email.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := es.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach email provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}

// TransactionEmailKind distinguishes the two sides of a transfer
type TransactionEmailKind string

const (
	TransactionEmailSent     TransactionEmailKind = "sent"
	TransactionEmailReceived TransactionEmailKind = "received"
)

// BuildTransactionEmail renders the subject and HTML body for a wallet
// transfer notification, matching the HandyPay template
func BuildTransactionEmail(amount float64, description string, kind TransactionEmailKind) (string, string) {
	var subject, actionText, color string
	if kind == TransactionEmailSent {
		subject = fmt.Sprintf("Transaction envoyée - %.2f€", amount)
		actionText = "envoyé"
		color = "#ef4444"
	} else {
		subject = fmt.Sprintf("Transaction reçue - %.2f€", amount)
		actionText = "reçu"
		color = "#22c55e"
	}

	html := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <div style="background: linear-gradient(135deg, #3b82f6, #8b5cf6); padding: 30px; border-radius: 12px; text-align: center; margin-bottom: 30px;">
          <h1 style="color: white; margin: 0; font-size: 24px;">HandyPay</h1>
        </div>
        <div style="background: #f8fafc; padding: 25px; border-radius: 8px; border-left: 4px solid %s;">
          <h2 style="color: #1f2937; margin-top: 0;">Transaction %se</h2>
          <p style="color: #4b5563; font-size: 16px; line-height: 1.6;">
            Une transaction de <strong style="color: %s;">%.2f€</strong> a été %se.
          </p>
          <p style="color: #6b7280; font-size: 14px;">
            <strong>Description :</strong> %s
          </p>
          <p style="color: #6b7280; font-size: 14px;">
            <strong>Date :</strong> %s
          </p>
        </div>
        <div style="margin-top: 30px; text-align: center;">
          <p style="color: #6b7280; font-size: 14px;">
            Connectez-vous à votre compte HandyPay pour voir tous les détails de cette transaction.
          </p>
        </div>
      </div>`,
		color, actionText, color, amount, actionText, description,
		time.Now().Format("02/01/2006 15:04"))

	return subject, html
}

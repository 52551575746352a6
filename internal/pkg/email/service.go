// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pressart/storefront-api/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	resendEndpoint     = "https://api.resend.com/emails"
	sendGridEndpoint   = "https://api.sendgrid.com/v3/mail/send"
	mailerSendEndpoint = "https://api.mailersend.com/v1/email"
)

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	templates map[string]*template.Template
	client    *http.Client
	endpoints map[string]string
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{
		config:    cfg,
		templates: make(map[string]*template.Template),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoints: map[string]string{
			"resend":     resendEndpoint,
			"sendgrid":   sendGridEndpoint,
			"mailersend": mailerSendEndpoint,
		},
	}

	if err := service.loadTemplates(); err != nil {
		log.Printf("Warning: Failed to load email templates: %v", err)
	}

	return service
}

// Enabled reports whether a delivery provider is configured
func (s *EmailService) Enabled() bool {
	provider := s.config.External.Email.Provider
	return provider != "" && provider != "none"
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "resend":
		return s.sendResendEmail(ctx, email)
	case "sendgrid":
		return s.sendSendGridEmail(ctx, email)
	case "mailersend":
		return s.sendMailerSendEmail(ctx, email)
	case "", "none":
		log.Printf("📭 Email delivery disabled, dropping %s mail to %s", email.Type, strings.Join(email.To, ", "))
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendCheckoutRequest notifies the shop inbox about a new print request
func (s *EmailService) SendCheckoutRequest(ctx context.Context, data CheckoutData) error {
	inbox := s.config.External.Email.ShopInbox
	if inbox == "" {
		return fmt.Errorf("SHOP_INBOX not configured")
	}
	s.fillBase(&data)

	htmlContent, err := s.renderTemplate("checkout_request", data)
	if err != nil {
		return fmt.Errorf("failed to render checkout request template: %w", err)
	}

	email := &Email{
		To:          []string{inbox},
		Subject:     fmt.Sprintf("New print request %s from %s", data.Reference, data.UserName),
		HTMLContent: htmlContent,
		TextContent: renderText(data),
		Type:        EmailTypeCheckoutRequest,
		Data: map[string]interface{}{
			"reference":    data.Reference,
			"total_amount": data.TotalAmount,
		},
	}

	return s.SendEmail(ctx, email)
}

// SendCheckoutReceipt confirms a print request to the customer
func (s *EmailService) SendCheckoutReceipt(ctx context.Context, data CheckoutData) error {
	if data.UserEmail == "" {
		return fmt.Errorf("customer email is empty")
	}
	s.fillBase(&data)

	htmlContent, err := s.renderTemplate("checkout_receipt", data)
	if err != nil {
		return fmt.Errorf("failed to render checkout receipt template: %w", err)
	}

	email := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("We received your print request %s", data.Reference),
		HTMLContent: htmlContent,
		TextContent: renderText(data),
		Type:        EmailTypeCheckoutReceipt,
		Data:        map[string]interface{}{"reference": data.Reference},
	}

	return s.SendEmail(ctx, email)
}

func (s *EmailService) fillBase(data *CheckoutData) {
	base := GetBaseTemplateData(
		s.config.App.CompanyName,
		s.config.App.FrontendURL,
		data.UserName,
		data.UserEmail,
	)
	data.EmailTemplateData = base
}

// loadTemplates parses the embedded email templates
func (s *EmailService) loadTemplates() error {
	for _, name := range []string{"checkout_request", "checkout_receipt"} {
		tmpl, err := template.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			log.Printf("Warning: Could not load template %s: %v", name, err)
			s.templates[name] = s.createFallbackTemplate(name)
			continue
		}
		s.templates[name] = tmpl
	}
	return nil
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

// createFallbackTemplate creates a basic HTML template as fallback
func (s *EmailService) createFallbackTemplate(name string) *template.Template {
	basicTemplate := `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h1>{{.SiteName}}</h1>
    <p>Print request {{.Reference}}: {{.TotalItems}} line(s), {{.TotalAmount}}.</p>
</body>
</html>`

	return template.Must(template.New(name).Parse(basicTemplate))
}

func renderText(data CheckoutData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Print request %s\n", data.Reference)
	for _, line := range data.Lines {
		fmt.Fprintf(&b, "- %s | %s | x%d | %s\n", line.Code, line.Size, line.Quantity, line.Total)
	}
	fmt.Fprintf(&b, "Total: %s\n", data.TotalAmount)
	return b.String()
}

func (s *EmailService) fromAddress() string {
	fromEmail := s.config.External.Email.FromEmail
	if fromName := s.config.External.Email.FromName; fromName != "" {
		return fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	return fromEmail
}

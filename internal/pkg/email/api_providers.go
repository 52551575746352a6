// internal/pkg/email/api_providers.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Resend API structures
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// SendGrid API structures
type SendGridEmailRequest struct {
	Personalizations []SendGridPersonalization `json:"personalizations"`
	From             SendGridEmail             `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []SendGridContent         `json:"content"`
	ReplyTo          *SendGridEmail            `json:"reply_to,omitempty"`
}

type SendGridPersonalization struct {
	To []SendGridEmail `json:"to"`
}

type SendGridEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type SendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// MailerSend API structures
type MailerSendRequest struct {
	From    MailerSendEmail   `json:"from"`
	To      []MailerSendEmail `json:"to"`
	Subject string            `json:"subject"`
	HTML    string            `json:"html"`
	Text    string            `json:"text,omitempty"`
	ReplyTo *MailerSendEmail  `json:"reply_to,omitempty"`
	Tags    []string          `json:"tags,omitempty"`
}

type MailerSendEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// sendResendEmail sends email using the Resend API
func (s *EmailService) sendResendEmail(ctx context.Context, email *Email) error {
	reqData := ResendEmailRequest{
		From:    s.fromAddress(),
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
		Text:    email.TextContent,
		ReplyTo: s.config.External.Email.ReplyTo,
	}
	return s.postJSON(ctx, "resend", "Resend", reqData, http.StatusOK)
}

// sendSendGridEmail sends email using the SendGrid API
func (s *EmailService) sendSendGridEmail(ctx context.Context, email *Email) error {
	var to []SendGridEmail
	for _, recipient := range email.To {
		to = append(to, SendGridEmail{Email: recipient})
	}

	var replyTo *SendGridEmail
	if s.config.External.Email.ReplyTo != "" {
		replyTo = &SendGridEmail{Email: s.config.External.Email.ReplyTo}
	}

	content := []SendGridContent{}
	if email.TextContent != "" {
		content = append(content, SendGridContent{Type: "text/plain", Value: email.TextContent})
	}
	content = append(content, SendGridContent{Type: "text/html", Value: email.HTMLContent})

	reqData := SendGridEmailRequest{
		Personalizations: []SendGridPersonalization{{To: to}},
		From: SendGridEmail{
			Email: s.config.External.Email.FromEmail,
			Name:  s.config.External.Email.FromName,
		},
		Subject: email.Subject,
		Content: content,
		ReplyTo: replyTo,
	}
	return s.postJSON(ctx, "sendgrid", "SendGrid", reqData, http.StatusAccepted)
}

// sendMailerSendEmail sends email using the MailerSend API
func (s *EmailService) sendMailerSendEmail(ctx context.Context, email *Email) error {
	var to []MailerSendEmail
	for _, recipient := range email.To {
		to = append(to, MailerSendEmail{Email: recipient})
	}

	var replyTo *MailerSendEmail
	if s.config.External.Email.ReplyTo != "" {
		replyTo = &MailerSendEmail{Email: s.config.External.Email.ReplyTo}
	}

	reqData := MailerSendRequest{
		From: MailerSendEmail{
			Email: s.config.External.Email.FromEmail,
			Name:  s.config.External.Email.FromName,
		},
		To:      to,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
		Text:    email.TextContent,
		ReplyTo: replyTo,
		Tags:    []string{string(email.Type)},
	}
	return s.postJSON(ctx, "mailersend", "MailerSend", reqData, http.StatusAccepted)
}

func (s *EmailService) postJSON(ctx context.Context, provider, label string, payload interface{}, wantStatus int) error {
	apiKey := s.config.External.Email.APIKey
	if apiKey == "" {
		return fmt.Errorf("%s API key not configured", label)
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", label, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoints[provider], bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", label, err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s API returned status %d", label, resp.StatusCode)
	}
	return nil
}

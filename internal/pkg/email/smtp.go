// internal/pkg/email/smtp.go
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// buildMIMEMessage renders headers and the HTML body of an email
func (s *EmailService) buildMIMEMessage(email *Email) []byte {
	headers := [][2]string{
		{"From", s.fromAddress()},
		{"To", strings.Join(email.To, ", ")},
		{"Subject", email.Subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"utf-8\""},
	}
	if len(email.CC) > 0 {
		headers = append(headers, [2]string{"Cc", strings.Join(email.CC, ", ")})
	}
	if s.config.External.Email.ReplyTo != "" {
		headers = append(headers, [2]string{"Reply-To", s.config.External.Email.ReplyTo})
	}

	var msg bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLContent)
	return msg.Bytes()
}

// sendSMTPEmail sends email using SMTP
func (s *EmailService) sendSMTPEmail(email *Email) error {
	cfg := s.config.External.Email
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host or username")
	}

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	serverAddr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	recipients := append(append(append([]string{}, email.To...), email.CC...), email.BCC...)
	msg := s.buildMIMEMessage(email)

	if cfg.SMTPUseTLS {
		return s.sendSMTPWithTLS(serverAddr, auth, cfg.FromEmail, recipients, msg)
	}
	return smtp.SendMail(serverAddr, auth, cfg.FromEmail, recipients, msg)
}

// sendSMTPWithTLS sends email over an implicit TLS connection
func (s *EmailService) sendSMTPWithTLS(serverAddr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host := s.config.External.Email.SMTPHost
	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("failed to create TLS connection: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to send DATA command: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write email content: %w", err)
	}
	return writer.Close()
}

// internal/pkg/notify/telegram.go
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pressart/storefront-api/internal/config"
	"github.com/sirupsen/logrus"
)

// maxMessageBytes is the Telegram limit for one text message
const maxMessageBytes = 4096

// Sender is the part of the bot API the notifier uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Options configures a Telegram notifier
type Options struct {
	Token      string
	ChatID     int64
	HTTPClient *http.Client
	Debug      bool
	Logger     *logrus.Logger
}

// Notifier posts shop-owner alerts to a Telegram chat
type Notifier struct {
	sender Sender
	chatID int64
	logger *logrus.Logger
}

// New connects to the bot API
func New(opts Options) (*Notifier, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if opts.ChatID == 0 {
		return nil, errors.New("telegram chat id is empty")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(opts.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	bot.Debug = opts.Debug

	return NewWithSender(bot, opts.ChatID, opts.Logger), nil
}

// NewFromConfig returns a disabled notifier when no bot token is configured
func NewFromConfig(cfg config.TelegramConfig, logger *logrus.Logger) (*Notifier, error) {
	if cfg.BotToken == "" {
		return NewWithSender(nil, 0, logger), nil
	}
	return New(Options{Token: cfg.BotToken, ChatID: cfg.ChatID, Debug: cfg.Debug, Logger: logger})
}

// NewWithSender wraps an existing sender
func NewWithSender(sender Sender, chatID int64, logger *logrus.Logger) *Notifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &Notifier{sender: sender, chatID: chatID, logger: logger}
}

// Enabled reports whether alerts are delivered
func (n *Notifier) Enabled() bool {
	return n.sender != nil
}

// CheckoutLine is one line of a checkout alert
type CheckoutLine struct {
	Code     string
	Size     string
	Quantity int
	Total    string
}

// CheckoutAlert summarises a print request for the shop owner
type CheckoutAlert struct {
	Reference   string
	Customer    string
	Email       string
	Lines       []CheckoutLine
	TotalAmount string
}

// Text renders the alert as a plain text message
func (a CheckoutAlert) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🖼 New print request %s\n", a.Reference)
	fmt.Fprintf(&b, "Customer: %s <%s>\n\n", a.Customer, a.Email)
	for i, line := range a.Lines {
		fmt.Fprintf(&b, "%d. %s · %s × %d · %s\n", i+1, line.Code, line.Size, line.Quantity, line.Total)
	}
	fmt.Fprintf(&b, "\nTotal: %s", a.TotalAmount)
	return b.String()
}

// NotifyCheckout sends a checkout alert to the configured chat
func (n *Notifier) NotifyCheckout(ctx context.Context, alert CheckoutAlert) error {
	if !n.Enabled() {
		n.logger.WithField("reference", alert.Reference).Debug("Telegram notifier disabled, skipping alert")
		return nil
	}
	return n.SendText(ctx, alert.Text())
}

// SendText sends text, split into as many messages as needed
func (n *Notifier) SendText(ctx context.Context, text string) error {
	for _, part := range splitByBytes(text, maxMessageBytes) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := n.sender.Send(tgbotapi.NewMessage(n.chatID, part)); err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}
	return nil
}

// splitByBytes cuts s into chunks of at most limit bytes on rune boundaries
func splitByBytes(s string, limit int) []string {
	if len(s) <= limit {
		return []string{s}
	}
	var parts []string
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		parts = append(parts, s[:cut])
		s = s[cut:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}

package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/domain/assistant"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/domain/preview"
	"github.com/pressart/storefront-api/internal/domain/pricing"
	"github.com/pressart/storefront-api/internal/pkg/email"
	"github.com/pressart/storefront-api/internal/pkg/logger"
	"github.com/pressart/storefront-api/internal/pkg/notify"
)

type fakeLines struct {
	lines    []assistant.Line
	err      error
	resetErr error
	reset    bool
}

func (f *fakeLines) Lines(ctx context.Context, sessionID string) ([]assistant.Line, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.lines) == 0 {
		return nil, assistant.ErrCartEmpty
	}
	return f.lines, nil
}

func (f *fakeLines) Reset(ctx context.Context, sessionID string) error {
	f.reset = true
	return f.resetErr
}

type fakeMailer struct {
	mu       sync.Mutex
	enabled  bool
	err      error
	requests []email.CheckoutData
	receipts []email.CheckoutData
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) SendCheckoutRequest(ctx context.Context, data email.CheckoutData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, data)
	return f.err
}

func (f *fakeMailer) SendCheckoutReceipt(ctx context.Context, data email.CheckoutData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts = append(f.receipts, data)
	return nil
}

// failingMailer fails both mails and closes failed once the request mail
// has returned its error
type failingMailer struct {
	once   sync.Once
	failed chan struct{}
}

func (f *failingMailer) Enabled() bool { return true }

func (f *failingMailer) SendCheckoutRequest(ctx context.Context, data email.CheckoutData) error {
	defer f.once.Do(func() { close(f.failed) })
	return errors.New("smtp down")
}

func (f *failingMailer) SendCheckoutReceipt(ctx context.Context, data email.CheckoutData) error {
	return errors.New("smtp down")
}

type recordingSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, c)
	return tgbotapi.Message{}, nil
}

// slowAlerter delivers through a real notifier after the mail has failed,
// the way a Telegram call over the network finishes after a fast SMTP error
type slowAlerter struct {
	notifier *notify.Notifier
	after    <-chan struct{}
}

func (a *slowAlerter) NotifyCheckout(ctx context.Context, alert notify.CheckoutAlert) error {
	<-a.after
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(20 * time.Millisecond):
	}
	return a.notifier.NotifyCheckout(ctx, alert)
}

type fakeAlerter struct {
	mu     sync.Mutex
	alerts []notify.CheckoutAlert
}

func (f *fakeAlerter) NotifyCheckout(ctx context.Context, alert notify.CheckoutAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
	return nil
}

func testPrices() *pricing.Book {
	return pricing.NewBook(config.PricingConfig{Currency: "PHP", Small: 29900, Medium: 44900, Large: 59900, XLarge: 79900})
}

func sampleLines() []assistant.Line {
	now := time.Now()
	return []assistant.Line{
		{ID: "l2", Code: "COLLAGE-004", Size: "Extra Large", Quantity: 1, AddedAt: now},
		{ID: "l1", Code: "UNKNOWNCAT-7", Size: "Small", Quantity: 3, AddedAt: now},
	}
}

func TestCheckout(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		lines        *fakeLines
		mailer       *fakeMailer
		injector     func(m *cart.MockRepository)
		customer     Customer
		wantErr      error
		wantNotified bool
		wantReceipts int
		wantReset    bool
	}{
		"syncs lines and notifies": {
			lines:  &fakeLines{lines: sampleLines()},
			mailer: &fakeMailer{enabled: true},
			injector: func(m *cart.MockRepository) {
				m.EXPECT().FindByUserID(gomock.Any(), uint(5)).Return(nil, cart.ErrCartNotFound)
				m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *cart.Cart) error {
					if len(c.Items) != 2 || c.Items[0].Size != "XL" || c.Items[1].Total != 89700 {
						t.Errorf("unexpected items: %+v", c.Items)
					}
					return nil
				})
			},
			customer:     Customer{ID: 5, Name: "Ana", Email: "ana@example.com"},
			wantNotified: true,
			wantReceipts: 1,
			wantReset:    true,
		},
		"mail disabled still alerts": {
			lines:  &fakeLines{lines: sampleLines()},
			mailer: &fakeMailer{},
			injector: func(m *cart.MockRepository) {
				m.EXPECT().FindByUserID(gomock.Any(), uint(5)).Return(nil, cart.ErrCartNotFound)
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			customer:     Customer{ID: 5, Name: "Ana"},
			wantNotified: true,
			wantReset:    true,
		},
		"notification failure keeps checkout": {
			lines:  &fakeLines{lines: sampleLines()},
			mailer: &fakeMailer{enabled: true, err: errors.New("smtp down")},
			injector: func(m *cart.MockRepository) {
				m.EXPECT().FindByUserID(gomock.Any(), uint(5)).Return(nil, cart.ErrCartNotFound)
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			customer:     Customer{ID: 5, Name: "Ana", Email: "ana@example.com"},
			wantNotified: false,
			wantReceipts: 1,
			wantReset:    true,
		},
		"empty session": {
			lines:    &fakeLines{},
			mailer:   &fakeMailer{enabled: true},
			injector: func(m *cart.MockRepository) {},
			customer: Customer{ID: 5},
			wantErr:  assistant.ErrCartEmpty,
		},
		"unknown size label": {
			lines:    &fakeLines{lines: []assistant.Line{{ID: "x", Code: "SPACE-1", Size: "Huge", Quantity: 1}}},
			mailer:   &fakeMailer{enabled: true},
			injector: func(m *cart.MockRepository) {},
			customer: Customer{ID: 5},
			wantErr:  assistant.ErrUnknownSize,
		},
	}

	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cart.NewMockRepository(ctrl)
			tt.injector(repo)

			alerter := &fakeAlerter{}
			carts := cart.NewService(repo, testPrices(), logger.Discard())
			svc := NewService(tt.lines, carts, testPrices(), preview.NewResolver(""), tt.mailer, alerter, "https://pressart.test/", logger.Discard())

			res, err := svc.Checkout(context.Background(), "sess", tt.customer)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if tt.lines.reset {
					t.Fatal("session must not be cleared on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if res.Message != assistant.MsgCheckedOut || res.Received != 2 || res.Notified != tt.wantNotified {
				t.Fatalf("unexpected result: %+v", res)
			}
			if res.Cart.TotalAmount != 79900+89700 {
				t.Fatalf("unexpected cart total %d", res.Cart.TotalAmount)
			}
			if tt.lines.reset != tt.wantReset {
				t.Fatalf("reset = %v", tt.lines.reset)
			}
			if len(alerter.alerts) != 1 || alerter.alerts[0].Reference != res.Reference {
				t.Fatalf("unexpected alerts: %+v", alerter.alerts)
			}
			if len(tt.mailer.receipts) != tt.wantReceipts {
				t.Fatalf("want %d receipts, got %d", tt.wantReceipts, len(tt.mailer.receipts))
			}
			if tt.mailer.enabled {
				req := tt.mailer.requests[0]
				if req.TotalAmount != "PHP 1696.00" || req.Lines[0].ImageURL != "https://pressart.test/Images/Collage/COLAGEM_04.avif" {
					t.Fatalf("unexpected mail data: %+v", req)
				}
			}
		})
	}
}

func TestCheckoutMailFailureStillAlertsShop(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := cart.NewMockRepository(ctrl)
	repo.EXPECT().FindByUserID(gomock.Any(), uint(5)).Return(nil, cart.ErrCartNotFound)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	mailer := &failingMailer{failed: make(chan struct{})}
	sender := &recordingSender{}
	alerter := &slowAlerter{notifier: notify.NewWithSender(sender, 42, logger.Discard()), after: mailer.failed}

	lines := &fakeLines{lines: sampleLines()}
	carts := cart.NewService(repo, testPrices(), logger.Discard())
	svc := NewService(lines, carts, testPrices(), preview.NewResolver(""), mailer, alerter, "https://pressart.test", logger.Discard())

	res, err := svc.Checkout(context.Background(), "sess", Customer{ID: 5, Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Notified {
		t.Fatal("mail failure should be reported")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("telegram alert dropped after mail failure: %d sent", len(sender.sent))
	}
	if !lines.reset {
		t.Fatal("session should be cleared")
	}
}

func TestCheckoutImageURLs(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		prefix string
		want   string
	}{
		"relative asset path gets site url": {
			prefix: "",
			want:   "https://pressart.test/Images/Collage/COLAGEM_04.avif",
		},
		"absolute cdn prefix kept": {
			prefix: "https://cdn.test/img",
			want:   "https://cdn.test/img/Collage/COLAGEM_04.avif",
		},
	}

	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cart.NewMockRepository(ctrl)
			repo.EXPECT().FindByUserID(gomock.Any(), uint(5)).Return(nil, cart.ErrCartNotFound)
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

			mailer := &fakeMailer{enabled: true}
			carts := cart.NewService(repo, testPrices(), logger.Discard())
			svc := NewService(&fakeLines{lines: sampleLines()}, carts, testPrices(), preview.NewResolver(tt.prefix), mailer, &fakeAlerter{}, "https://pressart.test/", logger.Discard())

			if _, err := svc.Checkout(context.Background(), "sess", Customer{ID: 5, Name: "Ana"}); err != nil {
				t.Fatalf("checkout: %v", err)
			}
			if got := mailer.requests[0].Lines[0].ImageURL; got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewReference(t *testing.T) {
	t.Parallel()

	a, b := newReference(), newReference()
	if len(a) != 11 || a[:3] != "PA-" || a == b {
		t.Fatalf("unexpected references %q %q", a, b)
	}
}

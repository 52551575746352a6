// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/domain/pricing"
)

// ErrEmptyCart is returned when a quote is requested for an empty cart
var ErrEmptyCart = errors.New("cart is empty")

var quoteTemplate = template.Must(template.New("quote").Parse(quoteHTML))

// Service renders cart quotes as PDF
type Service struct {
	config *config.Config
	prices *pricing.Book
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config, prices *pricing.Book) *Service {
	if cfg.External.PDF.BinaryPath != "" {
		wkhtmltopdf.SetPath(cfg.External.PDF.BinaryPath)
	}
	return &Service{
		config: cfg,
		prices: prices,
		now:    time.Now,
	}
}

// Customer identifies who the quote is for
type Customer struct {
	Name  string
	Email string
}

// QuoteLine is one row of the quote table
type QuoteLine struct {
	Code      string
	Size      string
	Quantity  int
	UnitPrice string
	Total     string
}

// QuoteData is the data passed to the quote template
type QuoteData struct {
	Number      string
	Date        string
	ValidUntil  string
	CompanyName string
	Website     string
	Customer    Customer
	Lines       []QuoteLine
	TotalItems  int
	TotalAmount string
}

// BuildQuoteData turns a cart into template data
func (s *Service) BuildQuoteData(c *cart.Cart, customer Customer) QuoteData {
	now := s.now()
	data := QuoteData{
		Number:      fmt.Sprintf("Q-%d-%s", c.UserID, now.Format("20060102150405")),
		Date:        now.Format("January 2, 2006"),
		ValidUntil:  now.AddDate(0, 0, 14).Format("January 2, 2006"),
		CompanyName: s.config.App.CompanyName,
		Website:     s.config.App.FrontendURL,
		Customer:    customer,
		TotalItems:  c.TotalItems,
		TotalAmount: s.prices.Format(c.TotalAmount),
	}
	for _, item := range c.Items {
		data.Lines = append(data.Lines, QuoteLine{
			Code:      item.Code,
			Size:      pricing.SizeLabel(item.Size),
			Quantity:  item.Quantity,
			UnitPrice: s.prices.Format(item.Price),
			Total:     s.prices.Format(item.Total),
		})
	}
	return data
}

// RenderHTML renders the quote page
func (s *Service) RenderHTML(data QuoteData) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GenerateQuote renders a cart as a PDF quote
func (s *Service) GenerateQuote(c *cart.Cart, customer Customer) (*bytes.Buffer, error) {
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	htmlContent, err := s.RenderHTML(s.BuildQuoteData(c, customer))
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	dpi := s.config.External.PDF.DPI
	if dpi == 0 {
		dpi = 300
	}
	pdfg.Dpi.Set(dpi)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const quoteHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Quote {{.Number}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { border-bottom: 2px solid #eee; padding-bottom: 20px; margin-bottom: 30px; }
        .title { font-size: 28px; font-weight: bold; color: #111; }
        .meta td { padding: 4px 12px 4px 0; }
        .meta .label { font-weight: bold; }
        .items { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items th, .items td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items th { background-color: #f8f9fa; }
        .items .num { text-align: right; width: 90px; }
        .total { text-align: right; font-size: 18px; font-weight: bold; }
        .footer { margin-top: 40px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <div class="title">{{.CompanyName}} Print Quote</div>
        <div>{{.Website}}</div>
    </div>
    <table class="meta">
        <tr><td class="label">Quote #</td><td>{{.Number}}</td></tr>
        <tr><td class="label">Date</td><td>{{.Date}}</td></tr>
        <tr><td class="label">Valid until</td><td>{{.ValidUntil}}</td></tr>
        <tr><td class="label">Customer</td><td>{{.Customer.Name}}{{if .Customer.Email}} ({{.Customer.Email}}){{end}}</td></tr>
    </table>
    <table class="items">
        <thead>
            <tr><th>Item code</th><th>Size</th><th class="num">Qty</th><th class="num">Unit</th><th class="num">Total</th></tr>
        </thead>
        <tbody>
        {{range .Lines}}
            <tr>
                <td>{{.Code}}</td>
                <td>{{.Size}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.UnitPrice}}</td>
                <td class="num">{{.Total}}</td>
            </tr>
        {{end}}
        </tbody>
    </table>
    <div class="total">{{.TotalItems}} line(s) &middot; {{.TotalAmount}}</div>
    <div class="footer">Prices are per print. Payment and delivery are confirmed by {{.CompanyName}} after you send this request.</div>
</body>
</html>`

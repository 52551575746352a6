// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	// EmailTypeCheckoutRequest goes to the shop inbox
	EmailTypeCheckoutRequest EmailType = "checkout_request"
	// EmailTypeCheckoutReceipt goes to the customer
	EmailTypeCheckoutReceipt EmailType = "checkout_receipt"
)

// Email represents an email message
type Email struct {
	To          []string               `json:"to"`
	CC          []string               `json:"cc,omitempty"`
	BCC         []string               `json:"bcc,omitempty"`
	Subject     string                 `json:"subject"`
	HTMLContent string                 `json:"html_content"`
	TextContent string                 `json:"text_content,omitempty"`
	Type        EmailType              `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName   string `json:"site_name"`
	SiteURL    string `json:"site_url"`
	SupportURL string `json:"support_url"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	Year       int    `json:"year"`
}

// CheckoutLine is one printed item as shown in checkout mails
type CheckoutLine struct {
	Code      string `json:"code"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
	ImageURL  string `json:"image_url,omitempty"`
}

// CheckoutData contains data for checkout request and receipt emails
type CheckoutData struct {
	EmailTemplateData
	Reference   string         `json:"reference"`
	PlacedAt    string         `json:"placed_at"`
	Lines       []CheckoutLine `json:"lines"`
	TotalItems  int            `json:"total_items"`
	TotalAmount string         `json:"total_amount"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL, userName, userEmail string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:   siteName,
		SiteURL:    siteURL,
		SupportURL: siteURL + "/contact",
		UserName:   userName,
		UserEmail:  userEmail,
		Year:       time.Now().Year(),
	}
}

package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/marishandmade/storefront/internal/admin"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSConfig carries the EmailJS credentials and template ids.
type EmailJSConfig struct {
	ServiceID       string
	TemplateID      string
	AdminTemplateID string
	PublicKey       string
	AdminEmail      string
	Endpoint        string
}

// EmailJSSender delivers the order emails through the EmailJS REST API.
type EmailJSSender struct {
	cfg  EmailJSConfig
	http *http.Client
}

func NewEmailJSSender(cfg EmailJSConfig) *EmailJSSender {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return &EmailJSSender{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendOrderEmails sends the customer confirmation and the admin notification
// concurrently. Each failure is logged and reported in the receipt; neither
// affects the other.
func (s *EmailJSSender) SendOrderEmails(ctx context.Context, o admin.Order) Receipt {
	r := sendBoth(
		func() error { return s.sendCustomerConfirmation(ctx, o) },
		func() error { return s.sendAdminNotification(ctx, o) },
	)
	if !r.Customer {
		log.Error().Str("order_id", o.ID).Str("email", o.Email).Msg("failed to send order confirmation")
	}
	if !r.Admin {
		log.Error().Str("order_id", o.ID).Msg("failed to send admin notification")
	}
	return r
}

func (s *EmailJSSender) sendCustomerConfirmation(ctx context.Context, o admin.Order) error {
	params := map[string]string{
		"to_email":         o.Email,
		"to_name":          o.CustomerName,
		"order_id":         o.ID,
		"order_date":       o.Date.Format("2 January 2006"),
		"order_items":      formatOrderItems(o),
		"subtotal":         "£" + o.Subtotal().StringFixed(2),
		"shipping":         "£4.99",
		"gift_section":     formatGiftSection(o),
		"total":            "£" + o.Total.StringFixed(2),
		"shipping_address": fmt.Sprintf("%s\n%s\n%s\nUnited Kingdom", o.Address, o.City, o.Postcode),
		"is_gift":          yesNo(o.IsGift),
		"gift_note":        orNA(o.GiftNote),
	}
	return s.send(ctx, s.cfg.TemplateID, params)
}

func (s *EmailJSSender) sendAdminNotification(ctx context.Context, o admin.Order) error {
	isGift := "No"
	if o.IsGift {
		isGift = "YES - GIFT ORDER"
	}
	params := map[string]string{
		"to_email":         s.cfg.AdminEmail,
		"order_id":         o.ID,
		"customer_name":    o.CustomerName,
		"customer_email":   o.Email,
		"order_date":       o.Date.Format("2 January 2006 15:04"),
		"order_items":      formatOrderItems(o),
		"total":            "£" + o.Total.StringFixed(2),
		"shipping_address": fmt.Sprintf("%s, %s, %s", o.Address, o.City, o.Postcode),
		"is_gift":          isGift,
		"gift_note":        orNA(o.GiftNote),
	}
	return s.send(ctx, s.cfg.AdminTemplateID, params)
}

func (s *EmailJSSender) send(ctx context.Context, templateID string, params map[string]string) error {
	body := emailJSRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         s.cfg.PublicKey,
		TemplateParams: params,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("email: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("email: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("email: unexpected status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

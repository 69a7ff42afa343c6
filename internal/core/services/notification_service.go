package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"wealthdesk/internal/config"
)

// NotificationService dispatches OTP emails and SMS messages through
// external transactional APIs. Calls are fire-and-forget request/response
// with no retry; a failed dispatch surfaces as a single error.
type NotificationService struct {
	cfg    config.NotifyConfig
	client *http.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		cfg: cfg.Notify,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// EmailEnabled reports whether email dispatch is configured
func (s *NotificationService) EmailEnabled() bool {
	return s.cfg.EmailAPIKey != ""
}

// SMSEnabled reports whether SMS dispatch is configured
func (s *NotificationService) SMSEnabled() bool {
	return s.cfg.SMSAPIKey != "" && s.cfg.SMSAPIURL != ""
}

// SendEmailOTP sends a one-time code to an email address
func (s *NotificationService) SendEmailOTP(email, code string) error {
	if !s.EmailEnabled() {
		log.Printf("⚠️ Email dispatch disabled, OTP for %s not sent", email)
		return nil
	}

	payload := map[string]interface{}{
		"sender": map[string]string{
			"name":  s.cfg.SenderName,
			"email": s.cfg.SenderEmail,
		},
		"to":          []map[string]string{{"email": email}},
		"subject":     "Your verification code",
		"htmlContent": fmt.Sprintf("<p>Your verification code is <b>%s</b>. It expires in 5 minutes.</p>", code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.EmailAPIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.cfg.EmailAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendSMSOTP sends a one-time code to a phone number
func (s *NotificationService) SendSMSOTP(phone, code string) error {
	if !s.SMSEnabled() {
		log.Printf("⚠️ SMS dispatch disabled, OTP for %s not sent", phone)
		return nil
	}

	payload := map[string]string{
		"to":      phone,
		"message": fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.SMSAPIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.SMSAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send SMS: status %d", resp.StatusCode)
	}
	return nil
}

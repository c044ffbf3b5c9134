package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// SMSSender delivers citizen confirmations through the Twilio REST API.
type SMSSender struct {
	cfg     config.NotifyConfig
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewSMSSender builds a Twilio-backed sender from config.
func NewSMSSender(cfg config.NotifyConfig, log logger.Logger) *SMSSender {
	return &SMSSender{
		cfg:     cfg,
		baseURL: twilioAPIBase,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SendCitizenSMS texts a short registration confirmation. Expected failures
// come back as an unsent Result, never as an error.
func (s *SMSSender) SendCitizenSMS(ctx context.Context, phone string, c *domain.Complaint) Result {
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioFromNumber == "" {
		return Result{Sent: false, Reason: "sms not configured"}
	}
	if phone == "" {
		return Result{Sent: false, Reason: "no phone number"}
	}

	body := fmt.Sprintf("Complaint %s registered with %s for %s. Urgency: %s.",
		c.ID, c.Department, c.Location, c.Urgency)

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.cfg.TwilioFromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.cfg.TwilioAccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{Sent: false, Reason: err.Error()}
	}
	req.SetBasicAuth(s.cfg.TwilioAccountSID, s.cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Warn("sms delivery failed", logger.String("to", phone), logger.Error(err))
		return Result{Sent: false, Reason: err.Error()}
	}
	defer resp.Body.Close()

	var tr twilioResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return Result{Sent: false, Reason: fmt.Sprintf("malformed response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := tr.Message
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		s.log.Warn("sms rejected", logger.String("to", phone), logger.String("reason", reason))
		return Result{Sent: false, Reason: reason}
	}

	s.log.Info("sms sent", logger.String("to", phone), logger.String("sid", tr.SID))
	return Result{Sent: true, ChannelID: tr.SID}
}

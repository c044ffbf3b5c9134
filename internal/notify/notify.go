// Package notify implements the outbound notification channels. Channels
// never return errors for expected failure modes (missing configuration,
// invalid address, upstream rejection): they report Result{Sent: false}
// with a reason so the orchestrator can record the flag and move on.
package notify

import (
	"context"

	"github.com/civicsetu/resolver/internal/domain"
)

// Result reports one channel's delivery attempt.
type Result struct {
	Sent      bool   `json:"sent"`
	ChannelID string `json:"channel_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// AuthorityNotifier delivers a complaint notice to the responsible
// authority.
type AuthorityNotifier interface {
	SendAuthorityNotice(ctx context.Context, c *domain.Complaint, contact domain.AuthorityContact, sourceLink string) Result
}

// CitizenNotifier delivers registration confirmations to the reporting
// citizen.
type CitizenNotifier interface {
	SendCitizenEmail(ctx context.Context, to string, c *domain.Complaint) Result
	SendCitizenSMS(ctx context.Context, phone string, c *domain.Complaint) Result
}

// MultiChannelNotifier combines the email and SMS senders into one
// CitizenNotifier.
type MultiChannelNotifier struct {
	email *EmailSender
	sms   *SMSSender
}

// NewCitizenNotifier combines an email and an SMS sender.
func NewCitizenNotifier(email *EmailSender, sms *SMSSender) *MultiChannelNotifier {
	return &MultiChannelNotifier{email: email, sms: sms}
}

func (m *MultiChannelNotifier) SendCitizenEmail(ctx context.Context, to string, c *domain.Complaint) Result {
	return m.email.SendCitizenEmail(ctx, to, c)
}

func (m *MultiChannelNotifier) SendCitizenSMS(ctx context.Context, phone string, c *domain.Complaint) Result {
	return m.sms.SendCitizenSMS(ctx, phone, c)
}

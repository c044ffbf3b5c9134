package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

// EmailSender delivers notices over SMTP.
type EmailSender struct {
	cfg config.NotifyConfig
	log logger.Logger

	// send is swappable in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender builds an SMTP sender from config.
func NewEmailSender(cfg config.NotifyConfig, log logger.Logger) *EmailSender {
	return &EmailSender{cfg: cfg, log: log, send: smtp.SendMail}
}

// SendAuthorityNotice emails the routed authority address with the
// complaint details and the original post link.
func (s *EmailSender) SendAuthorityNotice(ctx context.Context, c *domain.Complaint, contact domain.AuthorityContact, sourceLink string) Result {
	subject := fmt.Sprintf("[%s] %s complaint %s - %s", strings.ToUpper(c.Urgency), c.Department, c.ID, c.Location)
	body := fmt.Sprintf(
		"Complaint ID: %s\nDepartment: %s (%s)\nUrgency: %s\nLocation: %s (%.4f, %.4f)\nZone: %s\n\n%s\n\n%s\n\nOriginal report: %s\n",
		c.ID, c.Department, c.DepartmentFullName, c.Urgency,
		c.Location, c.Latitude, c.Longitude, contact.Zone,
		c.Title, c.Description, sourceLink,
	)
	return s.deliver(ctx, contact.PrimaryEmail, subject, body)
}

// SendCitizenEmail confirms registration to the reporting citizen.
func (s *EmailSender) SendCitizenEmail(ctx context.Context, to string, c *domain.Complaint) Result {
	subject := fmt.Sprintf("Complaint %s registered", c.ID)
	body := fmt.Sprintf(
		"Your complaint has been registered.\n\nComplaint ID: %s\nDepartment: %s\nUrgency: %s\nLocation: %s\nStatus: %s\n",
		c.ID, c.DepartmentFullName, c.Urgency, c.Location, c.Status,
	)
	return s.deliver(ctx, to, subject, body)
}

// deliver performs one SMTP send. Expected failures come back as an unsent
// Result, never as an error.
func (s *EmailSender) deliver(ctx context.Context, to, subject, body string) Result {
	if s.cfg.SMTPHost == "" || s.cfg.FromAddress == "" {
		return Result{Sent: false, Reason: "smtp not configured"}
	}
	if to == "" || !strings.Contains(to, "@") {
		return Result{Sent: false, Reason: fmt.Sprintf("invalid recipient %q", to)}
	}
	if err := ctx.Err(); err != nil {
		return Result{Sent: false, Reason: err.Error()}
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.cfg.FromAddress, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := s.send(addr, auth, s.cfg.FromAddress, []string{to}, []byte(msg)); err != nil {
		s.log.Warn("email delivery failed",
			logger.String("to", to),
			logger.Error(err),
		)
		return Result{Sent: false, Reason: err.Error()}
	}

	s.log.Info("email sent", logger.String("to", to), logger.String("subject", subject))
	return Result{Sent: true, ChannelID: "smtp:" + to}
}

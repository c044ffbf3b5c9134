package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

func testEmailComplaint() *domain.Complaint {
	return &domain.Complaint{
		ID:                 "DLH-20260301-abc123",
		Title:              "Massive pothole on the main road",
		Description:        "Two accidents already this week.",
		Department:         domain.DepartmentPWD,
		DepartmentFullName: "Public Works Department",
		Urgency:            domain.UrgencyHigh,
		Status:             domain.StatusOpen,
		Location:           "Janakpuri",
		Latitude:           28.6219,
		Longitude:          77.0878,
	}
}

func TestEmailSender_UnconfiguredReportsUnsent(t *testing.T) {
	sender := NewEmailSender(config.NotifyConfig{}, logger.NewNop())

	res := sender.SendCitizenEmail(context.Background(), "citizen@example.com", testEmailComplaint())
	if res.Sent {
		t.Fatal("unconfigured sender must not report sent")
	}
	if res.Reason != "smtp not configured" {
		t.Errorf("reason = %q", res.Reason)
	}
}

func TestEmailSender_InvalidRecipient(t *testing.T) {
	sender := NewEmailSender(config.NotifyConfig{
		SMTPHost: "localhost", SMTPPort: 25, FromAddress: "noreply@civicsetu.in",
	}, logger.NewNop())
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called for an invalid recipient")
		return nil
	}

	res := sender.SendCitizenEmail(context.Background(), "not-an-address", testEmailComplaint())
	if res.Sent {
		t.Fatal("invalid recipient must not report sent")
	}
}

func TestEmailSender_AuthorityNotice(t *testing.T) {
	var gotTo []string
	var gotMsg string

	sender := NewEmailSender(config.NotifyConfig{
		SMTPHost: "localhost", SMTPPort: 25, FromAddress: "noreply@civicsetu.in",
	}, logger.NewNop())
	sender.send = func(_ string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	contact := domain.AuthorityContact{
		Zone:         "West Delhi",
		PrimaryEmail: "pwd-west@delhi.gov.in",
	}
	res := sender.SendAuthorityNotice(context.Background(), testEmailComplaint(), contact, "https://www.reddit.com/r/delhi/comments/abc")
	if !res.Sent {
		t.Fatalf("result = %+v", res)
	}

	if len(gotTo) != 1 || gotTo[0] != "pwd-west@delhi.gov.in" {
		t.Errorf("recipients = %v", gotTo)
	}
	for _, fragment := range []string{
		"DLH-20260301-abc123",
		"Janakpuri",
		"West Delhi",
		"https://www.reddit.com/r/delhi/comments/abc",
	} {
		if !strings.Contains(gotMsg, fragment) {
			t.Errorf("message missing %q", fragment)
		}
	}
}

func TestEmailSender_TransportFailureReportsUnsent(t *testing.T) {
	sender := NewEmailSender(config.NotifyConfig{
		SMTPHost: "localhost", SMTPPort: 25, FromAddress: "noreply@civicsetu.in",
	}, logger.NewNop())
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	res := sender.SendCitizenEmail(context.Background(), "citizen@example.com", testEmailComplaint())
	if res.Sent {
		t.Fatal("transport failure must not report sent")
	}
	if !strings.Contains(res.Reason, "connection refused") {
		t.Errorf("reason = %q", res.Reason)
	}
}

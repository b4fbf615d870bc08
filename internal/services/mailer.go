package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/studora/studora-backend/internal/platform/env"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// Mailer sends plain-text notification email. Implementations must be
// safe for concurrent use; the notifier fans out over learners.
type Mailer interface {
	Send(ctx context.Context, toName, toEmail, subject, body string) error
}

// NewMailer picks the sendgrid transport when SENDGRID_API_KEY is set
// and falls back to console output otherwise, so local runs never need
// an account.
func NewMailer(baseLog *logger.Logger) Mailer {
	if strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")) != "" {
		return NewSendgridMailer(baseLog)
	}
	return NewConsoleMailer(baseLog)
}

type sendgridMailer struct {
	log      *logger.Logger
	key      string
	from     *sgmail.Email
	host     string
	endpoint string
}

func NewSendgridMailer(baseLog *logger.Logger) Mailer {
	log := baseLog.With("service", "SendgridMailer")
	fromName := env.Get("MAIL_FROM_NAME", "Studora", log)
	fromAddr := env.Get("MAIL_FROM_ADDRESS", "no-reply@studora.io", log)
	return &sendgridMailer{
		log:      log,
		key:      os.Getenv("SENDGRID_API_KEY"),
		from:     sgmail.NewEmail(fromName, fromAddr),
		host:     "https://api.sendgrid.com",
		endpoint: "/v3/mail/send",
	}
}

func (m *sendgridMailer) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(toName, toEmail))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(m.key, m.endpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

type consoleMailer struct {
	log *logger.Logger
}

func NewConsoleMailer(baseLog *logger.Logger) Mailer {
	return &consoleMailer{log: baseLog.With("service", "ConsoleMailer")}
}

func (m *consoleMailer) Send(ctx context.Context, toName, toEmail, subject, body string) error {
	m.log.Info("email (console transport)",
		"to", fmt.Sprintf("%s <%s>", toName, toEmail),
		"subject", subject,
		"body", body)
	return nil
}

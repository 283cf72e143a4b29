package notify

import (
	"errors"
	"fmt"
	"log"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
)

// ErrDelivery is matched by every DeliveryError.
var ErrDelivery = errors.New("email delivery failed")

// DeliveryError reports a failed send. StatusCode is zero when the request
// never reached SendGrid.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to send email via SendGrid: %v", e.Err)
	}
	return fmt.Sprintf("SendGrid API error: status %d, body: %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Is(target error) bool { return target == ErrDelivery }

func (e *DeliveryError) Unwrap() error { return e.Err }

// Sender is the part of the SendGrid client the Mailer needs.
type Sender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer sends rendered reports through SendGrid.
type Mailer struct {
	fromName  string
	fromEmail string
	client    Sender
	logger    *log.Logger
}

// NewMailer creates a Mailer using a SendGrid client for cfg.APIKey.
func NewMailer(cfg config.EmailConfig, logger *log.Logger) *Mailer {
	return NewMailerWithSender(cfg, sendgrid.NewSendClient(cfg.APIKey), logger)
}

// NewMailerWithSender creates a Mailer over an existing Sender.
func NewMailerWithSender(cfg config.EmailConfig, client Sender, logger *log.Logger) *Mailer {
	if logger == nil {
		logger = log.Default()
	}
	return &Mailer{
		fromName:  cfg.FromName,
		fromEmail: cfg.FromAddress,
		client:    client,
		logger:    logger,
	}
}

// Send delivers one HTML message to all recipients in a single request.
// An empty recipient list is a no-op.
func (m *Mailer) Send(subject, html string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(m.fromName, m.fromEmail))
	message.Subject = subject

	p := mail.NewPersonalization()
	for _, addr := range recipients {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", html))

	response, err := m.client.Send(message)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	if response.StatusCode >= 400 {
		return &DeliveryError{StatusCode: response.StatusCode, Body: response.Body}
	}

	m.logger.Printf("Sent %q to %d recipient(s)", subject, len(recipients))
	return nil
}

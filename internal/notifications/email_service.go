package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strconv"
	"time"

	"ticketly/internal/shared/config"
)

// EmailService sends notification emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromEmail  string
	FromName   string
	AdminEmail string
	UseTLS     bool
}

// NewSMTPConfig builds an SMTP config from application config
func NewSMTPConfig(cfg config.EmailConfig) *SMTPConfig {
	return &SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		FromEmail:  cfg.FromEmail,
		FromName:   cfg.FromName,
		AdminEmail: cfg.AdminEmail,
		UseTLS:     true,
	}
}

// NewEmailService returns a real SMTP sender when a host is configured and
// a log-only sender otherwise, so local development needs no mail server
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.SMTPHost == "" {
		return &logEmailService{}
	}
	return NewSMTPEmailService(NewSMTPConfig(cfg))
}

// logEmailService logs instead of sending, for environments without SMTP
type logEmailService struct{}

func (s *logEmailService) SendNotification(ctx context.Context, n *EmailNotification) error {
	log.Printf("📧 [LOG] Would send %s email to %s (%s): %s",
		n.Type, n.RecipientEmail, n.RecipientName, n.Subject)
	return nil
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config              *SMTPConfig
	confirmationTmpl    *template.Template
	adminSummaryEnabled bool
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(cfg *SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config:              cfg,
		confirmationTmpl:    template.Must(template.New("booking_confirmed").Parse(bookingConfirmedTemplate)),
		adminSummaryEnabled: cfg.AdminEmail != "",
	}
}

// SendNotification renders and sends the notification, plus a copy to the
// admin mailbox when one is configured
func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, err := s.renderContent(notification)
	if err != nil {
		return fmt.Errorf("failed to render email content: %w", err)
	}

	if err := s.sendHTML(notification.RecipientEmail, notification.Subject, htmlBody); err != nil {
		return err
	}

	if s.adminSummaryEnabled {
		adminSubject := fmt.Sprintf("[Admin Copy] %s", notification.Subject)
		if err := s.sendHTML(s.config.AdminEmail, adminSubject, htmlBody); err != nil {
			// Admin copy failures must not fail the user notification
			log.Printf("📧 [SMTP] Admin copy failed: %v", err)
		}
	}

	return nil
}

func (s *SMTPEmailService) renderContent(notification *EmailNotification) (string, error) {
	switch notification.Type {
	case NotificationTypeBookingConfirmed:
		var buf bytes.Buffer
		if err := s.confirmationTmpl.Execute(&buf, notification.TemplateData); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown notification type: %s", notification.Type)
	}
}

func (s *SMTPEmailService) sendHTML(to, subject, htmlBody string) error {
	message := s.buildMessage(to, subject, htmlBody)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS upgrades the connection before authenticating, which is
// what most providers expect on port 587
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		ServerName: s.config.Host,
	}
	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	message += fmt.Sprintf("--%s\r\n", boundary)
	message += "Content-Type: text/html; charset=UTF-8\r\n"
	message += "\r\n"
	message += htmlBody + "\r\n"
	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

const bookingConfirmedTemplate = `
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #ffffff; border-radius: 8px; padding: 24px;">
    <h2 style="color: #2c3e50;">🎟️ Your Ticket is Confirmed!</h2>
    <p>Hi {{.user_name}},</p>
    <p>Your booking for <strong>{{.event_title}}</strong> is confirmed.</p>
    <table style="width: 100%; border-collapse: collapse; margin: 16px 0;">
      <tr><td style="padding: 8px; color: #777;">Booking Reference</td><td style="padding: 8px;"><strong>{{.booking_reference}}</strong></td></tr>
      <tr><td style="padding: 8px; color: #777;">Theater</td><td style="padding: 8px;">{{.theater_name}}</td></tr>
      <tr><td style="padding: 8px; color: #777;">Show Time</td><td style="padding: 8px;">{{.show_time}}</td></tr>
      <tr><td style="padding: 8px; color: #777;">Seats</td><td style="padding: 8px;">{{.seats}}</td></tr>
      <tr><td style="padding: 8px; color: #777;">Total</td><td style="padding: 8px;">{{.total_amount}}</td></tr>
    </table>
    <p>Show this reference at the entrance. Enjoy the show!</p>
    <p style="color: #999; font-size: 12px;">Ticketly · This is an automated message, please do not reply.</p>
  </div>
</body>
</html>
`

package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendVerificationCode(ctx context.Context, to, employeeName, code string, expiresIn time.Duration) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	retryWait func(attempt int) time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		// exponential backoff: 1s, 2s, 4s
		retryWait: func(attempt int) time.Duration { return time.Duration(1<<(attempt-1)) * time.Second },
	}, nil
}

type verificationCodeEmailData struct {
	EmployeeName     string
	Code             string
	ExpiresInMinutes int
}

// SendVerificationCode sends the one-time self-service login code
func (s *emailServiceImpl) SendVerificationCode(ctx context.Context, to, employeeName, code string, expiresIn time.Duration) error {
	data := verificationCodeEmailData{
		EmployeeName:     employeeName,
		Code:             code,
		ExpiresInMinutes: int(expiresIn.Minutes()),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "verification_code.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(ctx, to, "員工自助服務驗證碼", body.String())
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return fmt.Errorf("email send cancelled: %w", ctx.Err())
			case <-time.After(s.retryWait(attempt)):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

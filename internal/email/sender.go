package email

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"swingclub/server/internal/config"
)

// Sender delivers a notification email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewSender returns an SMTP sender when the host is configured and a logging
// sender otherwise, so development environments need no mail server.
func NewSender(cfg *config.Config) Sender {
	if cfg.SmtpHost == "" {
		log.Println("SMTP host not configured, using logging email sender.")
		return &LoggingSender{cfg: cfg}
	}

	auth := smtp.PlainAuth("", cfg.SmtpUsername, cfg.SmtpPassword, cfg.SmtpHost)
	return &SMTPSender{
		cfg:  cfg,
		auth: auth,
		addr: fmt.Sprintf("%s:%d", cfg.SmtpHost, cfg.SmtpPort),
	}
}

// SMTPSender implements Sender using Go's net/smtp package.
type SMTPSender struct {
	cfg  *config.Config
	auth smtp.Auth
	addr string
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.SmtpFromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(s.addr, s.auth, s.cfg.SmtpFromAddress, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}
	return nil
}

// LoggingSender logs email details instead of sending. Useful for development
// or when SMTP isn't configured.
type LoggingSender struct {
	cfg *config.Config
}

func (s *LoggingSender) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("--- Sending Email (Logged) ---")
	log.Printf("From: %s", s.cfg.SmtpFromAddress)
	log.Printf("To: %s", to)
	log.Printf("Subject: %s", subject)
	log.Println(body)
	log.Println("--- End Email ---")
	return nil
}

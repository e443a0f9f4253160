package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Message is a single outbound email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message synchronously
type Sender interface {
	Send(msg Message) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// SMTPSender implements Sender over net/smtp
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger,
	}
}

// Send delivers one HTML email. When SMTP credentials are not configured
// the message is logged instead so development setups keep working.
func (s *SMTPSender) Send(msg Message) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n",
		s.config.FromName, s.config.FromEmail, msg.To, msg.Subject)
	payload := []byte(headers + "\r\n" + msg.HTML)

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{msg.To}, payload); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{ServerName: s.config.Host}
	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(payload); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}

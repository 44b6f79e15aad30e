package smtpmail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var (
	ErrNotConfigured = errors.New("smtp sender not configured")
)

// Config del sender SMTP. Host/From/To suelen venir de env vars.
type Config struct {
	Host     string // ej. "smtp.gmail.com"
	Port     int    // ej. 587
	Username string
	Password string
	From     string
	To       []string // contactos de emergencia
}

// Sender implementa notify.Sender sobre SMTP con AUTH PLAIN.
type Sender struct {
	cfg Config

	// seam para tests; default smtp.SendMail
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg Config) *Sender {
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	return &Sender{
		cfg:      cfg,
		sendMail: smtp.SendMail,
	}
}

func (s *Sender) IsConfigured() bool {
	return s != nil && s.cfg.Host != "" && s.cfg.From != "" && len(s.cfg.To) > 0
}

func (s *Sender) Send(ctx context.Context, subject, body string) (bool, error) {
	if !s.IsConfigured() {
		return false, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(s.cfg.To, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, s.cfg.From, s.cfg.To, []byte(msg)); err != nil {
		return false, err
	}
	return true, nil
}

// Package mail implementa el puerto ports.Mailer sobre SMTP (gomail).
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/pkg/config"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// ErrNoRecipients el mensaje no tiene destinatarios.
var ErrNoRecipients = errors.New("mail: sin destinatarios")

// ErrEmptyBody el mensaje no tiene cuerpo HTML ni texto.
var ErrEmptyBody = errors.New("mail: cuerpo vacío")

// sender abstrae gomail.Dialer para las pruebas.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer envía correo con gomail respetando la cancelación del contexto.
type SMTPMailer struct {
	from string
	d    sender
	log  *logger.Logger
}

var _ ports.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig, log *logger.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		return nil, fmt.Errorf("mail: SMTP_HOST, SMTP_PORT y SMTP_FROM son requeridos")
	}
	if log == nil {
		log = logger.Nop()
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	tlsCfg := &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	switch strings.ToLower(cfg.Encryption) {
	case "ssl":
		d.SSL = true
		d.TLSConfig = tlsCfg
	case "tls", "starttls":
		d.TLSConfig = tlsCfg
	}
	return &SMTPMailer{from: cfg.From, d: d, log: log.Named("mail")}, nil
}

// Send arma el mensaje y lo envía. Si el contexto se cancela antes de que termine
// el envío se devuelve ctx.Err() (el intento en curso no se aborta).
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Mail) error {
	gm, err := m.build(msg)
	if err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- m.d.DialAndSend(gm) }()

	select {
	case <-ctx.Done():
		m.log.Warn().Strs("to", msg.To).Str("subject", msg.Subject).Err(ctx.Err()).Msg("envío de email cancelado")
		return fmt.Errorf("mail: envío cancelado: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail: enviar: %w", err)
		}
	}
	m.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email enviado")
	return nil
}

func (m *SMTPMailer) build(msg ports.Mail) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	switch {
	case msg.HTMLBody != "":
		gm.SetBody("text/html", msg.HTMLBody)
		if msg.TextBody != "" {
			gm.AddAlternative("text/plain", msg.TextBody)
		}
	case msg.TextBody != "":
		gm.SetBody("text/plain", msg.TextBody)
	default:
		return nil, ErrEmptyBody
	}
	return gm, nil
}

// LogMailer sustituto cuando no hay SMTP configurado: solo registra el envío.
type LogMailer struct {
	log *logger.Logger
}

var _ ports.Mailer = (*LogMailer)(nil)

// NewLogMailer construye el mailer de solo log.
func NewLogMailer(log *logger.Logger) *LogMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &LogMailer{log: log.Named("mail")}
}

func (m *LogMailer) Send(ctx context.Context, msg ports.Mail) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("SMTP desactivado: email no enviado")
	return nil
}

// New elige SMTPMailer o LogMailer según la configuración.
func New(cfg config.SMTPConfig, log *logger.Logger) (ports.Mailer, error) {
	if !cfg.Enabled() {
		return NewLogMailer(log), nil
	}
	return NewSMTPMailer(cfg, log)
}

package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/pkg/config"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

type fakeSender struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.sent = append(f.sent, m...)
	return f.err
}

func newTestMailer(s sender) *SMTPMailer {
	return &SMTPMailer{from: "no-reply@test.local", d: s, log: logger.Nop()}
}

func TestSMTPMailer_Send(t *testing.T) {
	fs := &fakeSender{}
	m := newTestMailer(fs)
	err := m.Send(context.Background(), ports.Mail{
		To: []string{"ana@acme.test"}, ReplyTo: "luis@acme.test", Subject: "Hola", TextBody: "texto", HTMLBody: "<p>html</p>",
	})
	require.NoError(t, err)
	require.Len(t, fs.sent, 1)
	assert.Equal(t, []string{"ana@acme.test"}, fs.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"luis@acme.test"}, fs.sent[0].GetHeader("Reply-To"))
}

func TestSMTPMailer_Validaciones(t *testing.T) {
	m := newTestMailer(&fakeSender{})
	assert.ErrorIs(t, m.Send(context.Background(), ports.Mail{TextBody: "x"}), ErrNoRecipients)
	assert.ErrorIs(t, m.Send(context.Background(), ports.Mail{To: []string{"a@b.test"}}), ErrEmptyBody)
}

func TestSMTPMailer_ErrorDelServidor(t *testing.T) {
	boom := errors.New("535 auth failed")
	m := newTestMailer(&fakeSender{err: boom})
	err := m.Send(context.Background(), ports.Mail{To: []string{"a@b.test"}, TextBody: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestSMTPMailer_RespetaCancelacion(t *testing.T) {
	fs := &fakeSender{block: make(chan struct{})}
	defer close(fs.block)
	m := newTestMailer(fs)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := m.Send(ctx, ports.Mail{To: []string{"a@b.test"}, TextBody: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_SinSMTPUsaLogMailer(t *testing.T) {
	mailer, err := New(config.SMTPConfig{}, nil)
	require.NoError(t, err)
	_, ok := mailer.(*LogMailer)
	assert.True(t, ok)
	assert.NoError(t, mailer.Send(context.Background(), ports.Mail{To: []string{"a@b.test"}}))

	_, err = NewSMTPMailer(config.SMTPConfig{Host: "smtp.test"}, nil)
	assert.Error(t, err)
}

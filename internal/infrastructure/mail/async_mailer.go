package mail

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// ErrQueueFull la cola de envíos está llena; el mensaje se descarta.
var ErrQueueFull = errors.New("mail: cola de envío llena")

// ErrClosed el mailer ya no acepta mensajes.
var ErrClosed = errors.New("mail: mailer cerrado")

const (
	defaultQueueSize = 64
	asyncSendTimeout = 30 * time.Second
)

// AsyncMailer encola los mensajes y los entrega desde una goroutine propia,
// de modo que quien llama no espera al servidor SMTP.
type AsyncMailer struct {
	next  ports.Mailer
	queue chan ports.Mail
	done  chan struct{}
	log   *logger.Logger

	mu     sync.RWMutex
	closed bool
}

var _ ports.Mailer = (*AsyncMailer)(nil)

// NewAsyncMailer arranca el worker. size <= 0 usa la capacidad por defecto.
func NewAsyncMailer(next ports.Mailer, size int, log *logger.Logger) *AsyncMailer {
	if size <= 0 {
		size = defaultQueueSize
	}
	if log == nil {
		log = logger.Nop()
	}
	m := &AsyncMailer{
		next:  next,
		queue: make(chan ports.Mail, size),
		done:  make(chan struct{}),
		log:   log.Named("mail"),
	}
	go m.run()
	return m
}

// Send encola sin bloquear. Los errores de entrega solo van al log.
func (m *AsyncMailer) Send(_ context.Context, msg ports.Mail) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	select {
	case m.queue <- msg:
		return nil
	default:
		m.log.Warn().Strs("to", msg.To).Str("subject", msg.Subject).Msg("cola de email llena, mensaje descartado")
		return ErrQueueFull
	}
}

func (m *AsyncMailer) run() {
	defer close(m.done)
	for msg := range m.queue {
		ctx, cancel := context.WithTimeout(context.Background(), asyncSendTimeout)
		if err := m.next.Send(ctx, msg); err != nil {
			m.log.Error().Err(err).Strs("to", msg.To).Str("subject", msg.Subject).Msg("envío de email en segundo plano fallido")
		}
		cancel()
	}
}

// Close deja de aceptar mensajes y espera a que se entregue lo encolado o venza ctx.
func (m *AsyncMailer) Close(ctx context.Context) error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package ports

import "context"

// Mail mensaje de correo saliente. Debe traer al menos HTMLBody o TextBody.
type Mail struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer puerto de salida para envío de correo (SMTP u otro transporte).
// Send debe respetar la cancelación del contexto.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

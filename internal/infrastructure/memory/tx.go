package memory

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

// txLog guarda el valor previo de cada clave que escribe una transacción.
// Un valor nil registrado significa que la clave no existía.
// Sus métodos se llaman con s.mu tomado; sobre un log nil no hacen nada.
type txLog struct {
	users         map[string]*entity.User
	userRoles     map[string][]*entity.UserRole // por user_id
	resetTokens   map[string]*entity.PasswordResetToken
	notifications map[string]*entity.Notification
}

func newTxLog() *txLog {
	return &txLog{
		users:         map[string]*entity.User{},
		userRoles:     map[string][]*entity.UserRole{},
		resetTokens:   map[string]*entity.PasswordResetToken{},
		notifications: map[string]*entity.Notification{},
	}
}

// keep registra solo la primera escritura de cada clave.
func keep[T any](log, live map[string]*T, key string) {
	if _, seen := log[key]; seen {
		return
	}
	log[key] = live[key]
}

func (l *txLog) user(s *Store, id string) {
	if l != nil {
		keep(l.users, s.users, id)
	}
}

func (l *txLog) resetToken(s *Store, id string) {
	if l != nil {
		keep(l.resetTokens, s.resetTokens, id)
	}
}

func (l *txLog) notification(s *Store, id string) {
	if l != nil {
		keep(l.notifications, s.notifications, id)
	}
}

func (l *txLog) userRole(s *Store, userID string) {
	if l == nil {
		return
	}
	if _, seen := l.userRoles[userID]; seen {
		return
	}
	prev := []*entity.UserRole{}
	for _, ur := range s.userRoles {
		if ur.UserID == userID {
			c := *ur
			prev = append(prev, &c)
		}
	}
	l.userRoles[userID] = prev
}

// rollback devuelve a su valor previo solo las claves escritas por la transacción;
// lo que otras peticiones escribieron mientras tanto se conserva.
func (l *txLog) rollback(s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	undo(s.users, l.users)
	undo(s.resetTokens, l.resetTokens)
	undo(s.notifications, l.notifications)
	if len(l.userRoles) == 0 {
		return
	}
	next := make([]*entity.UserRole, 0, len(s.userRoles))
	for _, ur := range s.userRoles {
		if _, touched := l.userRoles[ur.UserID]; !touched {
			next = append(next, ur)
		}
	}
	for _, prev := range l.userRoles {
		next = append(next, prev...)
	}
	s.userRoles = next
}

func undo[T any](live, log map[string]*T) {
	for key, prev := range log {
		if prev == nil {
			delete(live, key)
			continue
		}
		live[key] = prev
	}
}

// TxRunner emula transacciones: serializa los Run y deshace las escrituras de fn si falla.
type TxRunner struct {
	s *Store
}

var _ repository.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn con repositorios que registran cada escritura; ante error se revierten.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	log := newTxLog()
	if err := fn(r.s.repos(log)); err != nil {
		log.rollback(r.s)
		return err
	}
	return nil
}

// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con DB_DRIVER=memory (desarrollo local) y como doble en las pruebas.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users         map[string]*entity.User
	roles         map[string]*entity.Role // por id
	userRoles     []*entity.UserRole
	products      map[string]*entity.Product
	categories    map[string]*entity.Category
	currencies    map[string]*entity.Currency
	rfqs          map[string]*entity.RFQ
	notifications map[string]*entity.Notification
	resetTokens   map[string]*entity.PasswordResetToken
	contacts      map[string]*entity.ContactSubmission

	// failures permite simular fallos de infraestructura por operación ("notifications.create", ...).
	failures map[string]error
}

// NewStore crea un store con roles y monedas sembrados.
func NewStore() *Store {
	s := &Store{
		users:         map[string]*entity.User{},
		roles:         map[string]*entity.Role{},
		products:      map[string]*entity.Product{},
		categories:    map[string]*entity.Category{},
		currencies:    map[string]*entity.Currency{},
		rfqs:          map[string]*entity.RFQ{},
		notifications: map[string]*entity.Notification{},
		resetTokens:   map[string]*entity.PasswordResetToken{},
		contacts:      map[string]*entity.ContactSubmission{},
		failures:      map[string]error{},
	}
	for i, name := range []string{entity.RoleBuyer, entity.RoleSeller, entity.RoleCaptain} {
		code, _ := entity.RoleCode(name)
		id := fmt.Sprintf("00000000-0000-0000-0000-00000000000%d", i+1)
		s.roles[id] = &entity.Role{ID: id, Name: name, Code: code}
	}
	for _, c := range []entity.Currency{
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
		{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	} {
		c := c
		s.currencies[c.Code] = &c
	}
	return s
}

// FailOn hace que la operación indicada devuelva err hasta que se limpie con FailOn(op, nil).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// failure debe llamarse con s.mu tomado.
func (s *Store) failure(op string) error {
	return s.failures[op]
}

// Ping siempre responde (no hay conexión que verificar).
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure("ping")
}

// repos construye los repositorios transaccionales; tx registra sus escrituras.
func (s *Store) repos(tx *txLog) repository.TxRepos {
	return repository.TxRepos{
		Users:         &UserRepo{s: s, tx: tx},
		UserRoles:     &UserRoleRepo{s: s, tx: tx},
		ResetTokens:   &ResetTokenRepo{s: s, tx: tx},
		Notifications: &NotificationRepo{s: s, tx: tx},
	}
}

// Package promo owns applied-promocode state per cart session and
// fronts the external validation endpoint.
package promo

import (
	"context"
	"strings"
	"sync"

	"github.com/example/medovik/internal/models"
)

// Validator is the external promocode validation call.
type Validator interface {
	Validate(ctx context.Context, code string, subtotal float64) (*models.PromocodeApplication, error)
}

// Manager keeps at most one applied promocode per session. Promo
// state is deliberately not persisted: a reload forces re-validation
// against the then-current subtotal.
type Manager struct {
	validator Validator

	mu      sync.Mutex
	applied map[string]*models.PromocodeApplication
}

// NewManager constructs Manager.
func NewManager(validator Validator) *Manager {
	return &Manager{
		validator: validator,
		applied:   map[string]*models.PromocodeApplication{},
	}
}

// Apply validates a code against the given subtotal. A blank code is
// a no-op. Success replaces any previously applied promocode; any
// failure clears it, so a stale discount never survives a rejected
// re-validation.
func (m *Manager) Apply(ctx context.Context, session, code string, subtotal float64) (*models.PromocodeApplication, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	application, err := m.validator.Validate(ctx, code, subtotal)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		delete(m.applied, session)
		return nil, err
	}
	m.applied[session] = application
	return application, nil
}

// Remove clears the applied promocode without any network call.
func (m *Manager) Remove(session string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.applied, session)
}

// Edited clears the applied promocode when the customer changes the
// code text, forcing re-validation before reuse.
func (m *Manager) Edited(session string) {
	m.Remove(session)
}

// Applied returns the session's active promocode, or nil.
func (m *Manager) Applied(session string) *models.PromocodeApplication {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied[session]
}

package terminal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
)

// PartnerValidator checks a partner id against the remote service.
type PartnerValidator interface {
	ValidatePartner(ctx context.Context, partnerID int64) (bool, error)
}

// CatalogClient is the full remote surface the manager hands to sessions.
type CatalogClient interface {
	PartnerValidator
	ProductFetcher
}

// Manager owns every live terminal session. Sessions exist only in
// memory; logout or process exit discards them.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	client   CatalogClient
}

// NewManager builds a session manager on top of the catalog client.
func NewManager(client CatalogClient) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client required")
	}
	return &Manager{
		sessions: map[string]*Session{},
		client:   client,
	}, nil
}

// Login validates the partner id against the remote service and opens
// a session with an empty basket. Unknown partners are rejected.
func (m *Manager) Login(ctx context.Context, partnerID int64, partnerName string) (*Session, error) {
	if partnerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id must be positive")
	}

	ok, err := m.client.ValidatePartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown partner id")
	}

	session := newSession(uuid.NewString(), partnerID, strings.TrimSpace(partnerName), m.client)

	m.mu.Lock()
	m.sessions[session.Token()] = session
	m.mu.Unlock()

	return session, nil
}

// Get resolves a session token.
func (m *Manager) Get(token string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session not found")
	}
	return session, nil
}

// Logout discards the session and its basket.
func (m *Manager) Logout(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session not found")
	}
	delete(m.sessions, token)
	return nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

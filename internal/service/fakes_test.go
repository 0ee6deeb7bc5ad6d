package service

import (
	"context"
	"sync"
	"time"

	"corpoleve/internal/models"
	"corpoleve/internal/repository"
)

// memUserStore is an in-memory UserStore
type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
	tokens map[string]*models.PasswordResetToken
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users:  make(map[int64]*models.User),
		tokens: make(map[string]*models.PasswordResetToken),
	}
}

func (m *memUserStore) CreateUser(ctx context.Context, email, passwordHash, name string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := time.Now()
	u := &models.User{ID: m.nextID, Email: email, PasswordHash: passwordHash, Name: name, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memUserStore) find(match func(*models.User) bool) *models.User {
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *memUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *models.User) bool { return u.Email == email }), nil
}

func (m *memUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *models.User) bool { return u.ID == id }), nil
}

func (m *memUserStore) GetUserByOAuth(ctx context.Context, provider, subject string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *models.User) bool { return u.OAuthProvider == provider && u.OAuthSubject == subject }), nil
}

func (m *memUserStore) LinkOAuthProvider(ctx context.Context, userID int64, provider, subject string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	if u == nil || u.OAuthProvider != "" {
		return repository.ErrOAuthAlreadyLinked
	}
	u.OAuthProvider, u.OAuthSubject = provider, subject
	return nil
}

func (m *memUserStore) UpdateName(ctx context.Context, userID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[userID]; u != nil {
		u.Name = name
	}
	return nil
}

func (m *memUserStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[userID]; u != nil {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *memUserStore) DeleteUser(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	return nil
}

func (m *memUserStore) CreatePasswordResetToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = &models.PasswordResetToken{Token: token, UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	return nil
}

func (m *memUserStore) GetPasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memUserStore) MarkPasswordResetTokenAsUsed(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[token]; ok {
		t.Used = true
	}
	return nil
}

func (m *memUserStore) DeleteUserPasswordResetTokens(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, k)
		}
	}
	return nil
}

func (m *memUserStore) DeleteExpiredPasswordResetTokens(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, t := range m.tokens {
		if t.IsExpired() {
			delete(m.tokens, k)
		}
	}
	return nil
}

// memSessionStore is an in-memory SessionStore
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*models.Session)}
}

func (m *memSessionStore) CreateSession(ctx context.Context, sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &models.Session{ID: sessionID, UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	m.sessions[sessionID] = s
	return s, nil
}

func (m *memSessionStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionID], nil
}

func (m *memSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memSessionStore) DeleteUserSessions(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *memSessionStore) DeleteExpiredSessions(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.IsExpired() {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *memSessionStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type staticDemoSwitch bool

func (s staticDemoSwitch) IsDemoLoginEnabled(ctx context.Context) bool { return bool(s) }

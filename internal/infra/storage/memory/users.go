package memory

import (
	"context"
	"strings"
	"sync"

	domainauth "villadesk/internal/domain/auth"
	domainuser "villadesk/internal/domain/user"
)

// UserRepository stores users in memory. Not suitable for production.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[domainuser.ID]*domainuser.User
	byEmail map[string]domainuser.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[domainuser.ID]*domainuser.User),
		byEmail: make(map[string]domainuser.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.byID[id]; ok {
		return cloneUser(user), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	if user, ok := r.byID[id]; ok {
		return cloneUser(user), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, user *domainuser.User) error {
	if user == nil || strings.TrimSpace(string(user.ID)) == "" {
		return domainuser.ErrIDRequired
	}
	emailKey := strings.ToLower(strings.TrimSpace(user.Email))
	if emailKey == "" {
		return domainuser.ErrEmailRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byID[user.ID]; ok {
		prevKey := strings.ToLower(prev.Email)
		if prevKey != emailKey {
			delete(r.byEmail, prevKey)
		}
	}
	r.byEmail[emailKey] = user.ID
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func cloneUser(u *domainuser.User) *domainuser.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

var _ domainuser.Repository = (*UserRepository)(nil)

// SessionStore keeps sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domainauth.Token]*domainauth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[domainauth.Token]*domainauth.Session)}
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[session.Token] = &clone
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[token]; ok {
		clone := *session
		return &clone, nil
	}
	return nil, domainauth.ErrSessionNotFound
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ domainauth.SessionStore = (*SessionStore)(nil)

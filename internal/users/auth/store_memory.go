// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
)

// # In-Memory Directory

// MemoryUserRepository is the process-local [UserRepository].
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   []*User
	byID    map[string]*User
	byEmail map[string]*User
}

// NewMemoryUserRepository creates an empty directory.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

// FindByID implements [UserRepository].
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user.Clone(), nil
}

// FindByEmail implements [UserRepository].
func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user.Clone(), nil
}

// Create implements [UserRepository].
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byEmail[user.Email]; taken {
		return apperr.Conflict("Email is already registered")
	}
	if _, taken := repository.byID[user.ID]; taken {
		return apperr.Conflict("User already exists")
	}

	stored := user.Clone()
	repository.users = append(repository.users, stored)
	repository.byID[stored.ID] = stored
	repository.byEmail[stored.Email] = stored
	return nil
}

// AddPurchase implements [UserRepository].
func (repository *MemoryUserRepository) AddPurchase(_ context.Context, userID, bookID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	if !user.HasPurchased(bookID) {
		user.PurchasedBooks = append(user.PurchasedBooks, bookID)
	}
	return nil
}

// Count implements [UserRepository].
func (repository *MemoryUserRepository) Count(_ context.Context) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.users), nil
}

// # In-Memory Sessions

// MemorySessionRepository is the process-local [SessionRepository].
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemorySessionRepository creates an empty session store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]Session), now: time.Now}
}

// Create implements [SessionRepository].
func (repository *MemorySessionRepository) Create(_ context.Context, session *Session, ttl time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored := *session
	stored.ExpiresAt = repository.now().Add(ttl)
	repository.sessions[session.ID] = stored
	return nil
}

// Find implements [SessionRepository]. Expired sessions are dropped lazily.
func (repository *MemorySessionRepository) Find(_ context.Context, id string) (*Session, error) {
	repository.mu.RLock()
	session, ok := repository.sessions[id]
	repository.mu.RUnlock()

	if !ok {
		return nil, apperr.NotFound("Session")
	}

	if session.Expired(repository.now()) {
		repository.mu.Lock()
		delete(repository.sessions, id)
		repository.mu.Unlock()
		return nil, apperr.NotFound("Session")
	}

	return &session, nil
}

// Delete implements [SessionRepository].
func (repository *MemorySessionRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.sessions, id)
	return nil
}

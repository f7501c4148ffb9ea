package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps users in memory for tests and local runs.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*User
}

// NewMemoryRepository creates an empty in-memory user repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[uuid.UUID]*User)}
}

func (r *MemoryRepository) GetByEmail(_ context.Context, tenantID, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.TenantID == tenantID && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	cp := *u
	return &cp, nil
}

// SetDisabled toggles an account's disabled flag.
func (r *MemoryRepository) SetDisabled(_ context.Context, id uuid.UUID, disabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	u.Disabled = disabled
	return nil
}

func (r *MemoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.TenantID == u.TenantID && existing.Email == u.Email {
			return fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/acquisitions/internal/domain/entity"
	"github.com/oksasatya/acquisitions/internal/domain/repository"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// MemUserRepo is an in-memory UserRepository enforcing email uniqueness
// like the users table does.
type MemUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]string

	Creates int

	// Optional failure injection.
	LookupErr error
	CreateErr error
	// SkipLookup makes GetByEmail miss, simulating a concurrent insert that
	// the pre-check could not see.
	SkipLookup bool
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]string{}}
}

func (r *MemUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	r.Creates++
	return nil
}

func (r *MemUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LookupErr != nil {
		return nil, r.LookupErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LookupErr != nil {
		return nil, r.LookupErr
	}
	id, ok := r.byEmail[email]
	if !ok || r.SkipLookup {
		return nil, repository.ErrUserNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

// Seed stores u directly, bypassing uniqueness checks.
func (r *MemUserRepo) Seed(u entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = u.ID
	return &u
}

var _ repository.UserRepository = (*MemUserRepo)(nil)

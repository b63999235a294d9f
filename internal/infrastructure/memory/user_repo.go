package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/ymatsuda/auth-service/internal/domain"
)

// UserRepo is an in-memory user store for tests and local development.
// It enforces the same email uniqueness contract as the relational engine.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ID is assigned by the caller before the repository is invoked.
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrIntegrityViolation(errors.New("email already stored"))
	}
	if _, exists := r.byID[u.ID]; exists {
		return domain.User{}, domain.ErrIntegrityViolation(errors.New("id already stored"))
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.byID[id]
	return &u, nil
}

// Len reports the number of stored users; handy in tests asserting the
// zero-writes-on-failure contract.
func (r *UserRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

package registration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ymatsuda/auth-service/internal/domain"
	"github.com/ymatsuda/auth-service/internal/logger"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	saveErr        error
	findByIDErr    error
	findByEmailErr error

	saveCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) Save(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saveCalls++
	if f.saveErr != nil {
		return domain.User{}, f.saveErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrIntegrityViolation(errors.New("duplicate email"))
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type fakeHasher struct {
	hashFn func(pw string) (string, error)
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

type fakePublisher struct {
	mu         sync.Mutex
	published  []UserRegisteredEvent
	publishErr error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, evt)
	return nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakePublisher) {
	t.Helper()
	logger.Init()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	pub := &fakePublisher{}
	svc := NewService(users, hasher, pub)
	return svc, users, hasher, pub
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}

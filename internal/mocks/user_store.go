package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateProfileFn func(ctx context.Context, id, name, about string) (*domain.User, error)
	UpdateAvatarFn  func(ctx context.Context, id, avatar string) (*domain.User, error)

	mu    sync.Mutex
	Users map[string]*domain.User // keyed by ID
	Calls int
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{Users: make(map[string]*domain.User)}
	for _, u := range users {
		m.Users[u.ID] = u
	}
	return m
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) record() {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.record()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	m.Users[user.ID] = &copied
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.record()
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.record()
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	email = domain.NormalizeEmail(email)
	for _, user := range m.Users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.record()
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateProfile implements the UserStore interface
func (m *MockUserStore) UpdateProfile(ctx context.Context, id, name, about string) (*domain.User, error) {
	m.record()
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, id, name, about)
	}
	return m.update(id, func(u *domain.User) {
		u.Name = name
		u.About = about
	})
}

// UpdateAvatar implements the UserStore interface
func (m *MockUserStore) UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error) {
	m.record()
	if m.UpdateAvatarFn != nil {
		return m.UpdateAvatarFn(ctx, id, avatar)
	}
	return m.update(id, func(u *domain.User) {
		u.Avatar = avatar
	})
}

func (m *MockUserStore) update(id string, apply func(u *domain.User)) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	apply(user)
	copied := *user
	return &copied, nil
}

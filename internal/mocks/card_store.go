package mocks

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"sync"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MockCardStore implements store.CardStore for testing.
// WithTx returns the same mock, so transactional code paths share its state.
// Set Conn to a sqlmock-backed *sql.DB when the code under test starts transactions.
type MockCardStore struct {
	CreateFn           func(ctx context.Context, card *domain.Card) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Card, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Card, error)
	ListFn             func(ctx context.Context) ([]*domain.Card, error)
	DeleteFn           func(ctx context.Context, id string) error
	AddLikeFn          func(ctx context.Context, cardID, userID string) (*domain.Card, error)
	RemoveLikeFn       func(ctx context.Context, cardID, userID string) (*domain.Card, error)

	Conn *sql.DB

	mu    sync.Mutex
	Cards map[string]*domain.Card // keyed by ID
	Calls int
	InTx  bool
}

// NewMockCardStore creates a new mock store holding cards.
func NewMockCardStore(cards ...*domain.Card) *MockCardStore {
	m := &MockCardStore{Cards: make(map[string]*domain.Card)}
	for _, c := range cards {
		m.Cards[c.ID] = c
	}
	return m
}

var _ store.CardStore = (*MockCardStore)(nil)

func (m *MockCardStore) record() {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
}

func copyCard(c *domain.Card) *domain.Card {
	copied := *c
	copied.Likes = append([]string{}, c.Likes...)
	return &copied
}

// Create implements the CardStore interface
func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	m.record()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cards[card.ID] = copyCard(card)
	return nil
}

// GetByID implements the CardStore interface
func (m *MockCardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	m.record()
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.get(id)
}

// GetByIDForUpdate implements the CardStore interface
func (m *MockCardStore) GetByIDForUpdate(ctx context.Context, id string) (*domain.Card, error) {
	m.record()
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.get(id)
}

func (m *MockCardStore) get(id string) (*domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, ok := m.Cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return copyCard(card), nil
}

// List implements the CardStore interface
func (m *MockCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	m.record()
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cards := make([]*domain.Card, 0, len(m.Cards))
	for _, card := range m.Cards {
		cards = append(cards, copyCard(card))
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].CreatedAt.After(cards[j].CreatedAt) })
	return cards, nil
}

// Delete implements the CardStore interface
func (m *MockCardStore) Delete(ctx context.Context, id string) error {
	m.record()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(m.Cards, id)
	return nil
}

// AddLike implements the CardStore interface
func (m *MockCardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	m.record()
	if m.AddLikeFn != nil {
		return m.AddLikeFn(ctx, cardID, userID)
	}
	return m.updateLikes(cardID, func(likes []string) []string {
		if slices.Contains(likes, userID) {
			return likes
		}
		return append(likes, userID)
	})
}

// RemoveLike implements the CardStore interface
func (m *MockCardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	m.record()
	if m.RemoveLikeFn != nil {
		return m.RemoveLikeFn(ctx, cardID, userID)
	}
	return m.updateLikes(cardID, func(likes []string) []string {
		return slices.DeleteFunc(likes, func(id string) bool { return id == userID })
	})
}

func (m *MockCardStore) updateLikes(cardID string, apply func([]string) []string) (*domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, ok := m.Cards[cardID]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	card.Likes = apply(card.Likes)
	if card.Likes == nil {
		card.Likes = []string{}
	}
	return copyCard(card), nil
}

// WithTx implements the CardStore interface
func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	m.mu.Lock()
	m.InTx = true
	m.mu.Unlock()
	return m
}

// DB implements the CardStore interface
func (m *MockCardStore) DB() *sql.DB {
	return m.Conn
}

package service

import (
	"context"
	"sync"

	"github.com/adi-0104/Qkart/internal/cache"
	"github.com/adi-0104/Qkart/internal/catalog"
	"github.com/adi-0104/Qkart/internal/domain"
	"github.com/adi-0104/Qkart/internal/events"
	"github.com/adi-0104/Qkart/internal/repository"
)

// mockCartRepository implements repository.CartRepository with real
// version CAS semantics so the retry path can be exercised.
type mockCartRepository struct {
	mu        sync.Mutex
	carts     map[string]*domain.Cart
	getErr    error
	createErr error

	// replaceConflicts makes the next N ReplaceCart calls fail with a
	// version conflict regardless of the stored version.
	replaceConflicts int
	replaceCalls     int
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: map[string]*domain.Cart{}}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	copied := *c
	copied.Items = append([]domain.CartItem(nil), c.Items...)
	return &copied
}

func (m *mockCartRepository) GetCart(_ context.Context, email string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	cart, ok := m.carts[email]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (m *mockCartRepository) CreateCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.carts[cart.Email]; ok {
		return repository.ErrVersionConflict
	}
	cart.Version = 1
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	m.carts[cart.Email] = cloneCart(cart)
	return nil
}

func (m *mockCartRepository) ReplaceCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceCalls++
	if m.replaceConflicts > 0 {
		m.replaceConflicts--
		return repository.ErrVersionConflict
	}
	stored, ok := m.carts[cart.Email]
	if !ok || stored.Version != cart.Version {
		return repository.ErrVersionConflict
	}
	cart.Version++
	m.carts[cart.Email] = cloneCart(cart)
	return nil
}

// clearItems mirrors the checkout transaction's cart write: clear the
// lines only when the given version is still current.
func (m *mockCartRepository) clearItems(email string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[email]
	if !ok || cart.Version != version {
		return repository.ErrVersionConflict
	}
	cart.Items = []domain.CartItem{}
	cart.Version++
	return nil
}

type mockCheckoutStore struct {
	repo  *mockCartRepository
	err   error
	calls int
	email string
	total float64

	// beforeCommit runs once, just before the version check, standing
	// in for a writer that lands between the caller's read and the
	// transaction.
	beforeCommit func()
}

func (m *mockCheckoutStore) CompleteCheckout(_ context.Context, email string, version int64, total float64) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.beforeCommit != nil {
		hook := m.beforeCommit
		m.beforeCommit = nil
		hook()
	}
	if m.repo != nil {
		if err := m.repo.clearItems(email, version); err != nil {
			return err
		}
	}
	m.email = email
	m.total = total
	return nil
}

type mockCatalog struct {
	products map[string]*domain.Product
	err      error
}

func (m *mockCatalog) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}

type mockCache struct {
	mu   sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCache) Get(context.Context, string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return cloneCart(m.cart), nil
}

func (m *mockCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cloneCart(cart)
	return m.err
}

func (m *mockCache) Delete(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
	return m.err
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.CheckoutCompleted
	err    error
}

func (m *mockPublisher) PublishCheckoutCompleted(_ context.Context, event events.CheckoutCompleted) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

// fixture wires a service against fresh mocks with two catalog
// products: p-1 at 100 and p-2 at 50.
type fixture struct {
	svc      *CartService
	repo     *mockCartRepository
	checkout *mockCheckoutStore
	catalog  *mockCatalog
	cache    *mockCache
	pub      *mockPublisher
}

func newFixture() *fixture {
	repo := newMockCartRepository()
	checkout := &mockCheckoutStore{repo: repo}
	cat := &mockCatalog{products: map[string]*domain.Product{
		"p-1": {ID: "p-1", Name: "OnePlus 6", Category: "Phones", Cost: 100, Rating: 5},
		"p-2": {ID: "p-2", Name: "UNIFACTOR Mens Running Shoes", Category: "Footwear", Cost: 50, Rating: 4},
	}}
	c := &mockCache{}
	pub := &mockPublisher{}

	return &fixture{
		svc:      NewCartService(repo, checkout, cat, c, pub),
		repo:     repo,
		checkout: checkout,
		catalog:  cat,
		cache:    c,
		pub:      pub,
	}
}

func testUser() *domain.UserAccount {
	return &domain.UserAccount{
		Email:       "crio-user@gmail.com",
		Name:        "crio user",
		WalletMoney: 500,
		Address:     "14th street, Colaba, Mumbai",
	}
}

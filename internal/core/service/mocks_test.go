package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

// Mock StateRepository
type mockStateRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMockStateRepo() *mockStateRepo {
	return &mockStateRepo{data: make(map[string][]byte)}
}

func (m *mockStateRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *mockStateRepo) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *mockStateRepo) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}

// Mock Authenticator
type mockAuthenticator struct{}

func (mockAuthenticator) Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if !strings.Contains(creds.Email, "@") || creds.Password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	name, _, _ := strings.Cut(creds.Email, "@")
	return domain.User{ID: "id-" + creds.Email, Email: creds.Email, Name: name}, nil
}

// Mock OrderEventPublisher
type mockPublisher struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (m *mockPublisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	return m.err
}

var errBoom = errors.New("boom")

var nop = zerolog.Nop()

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func shoe(id, price string) domain.Product {
	return domain.Product{
		ID:     id,
		Name:   "Shoe " + id,
		Brand:  "Acme",
		Price:  dec(price),
		Sizes:  []float64{8, 9, 10},
		Colors: []string{"Black", "White"},
	}
}

func line(p domain.Product, size float64, color string, qty int) domain.CartItem {
	return domain.CartItem{Product: p, Size: size, Color: color, Quantity: qty}
}

type fixture struct {
	repo      *mockStateRepo
	publisher *mockPublisher
	cart      *CartService
	orders    *OrderService
	auth      *AuthService
	checkout  *CheckoutService
}

func newFixture() *fixture {
	ctx := context.Background()
	repo := newMockStateRepo()
	f := &fixture{repo: repo, publisher: &mockPublisher{}}
	f.cart = NewCartService(ctx, repo, nop)
	f.orders = NewOrderService(ctx, repo, nop)
	f.auth = NewAuthService(mockAuthenticator{}, nop)
	f.checkout = NewCheckoutService(f.cart, f.orders, f.auth, DefaultPricing(), f.publisher, nop)
	return f
}

func (f *fixture) login(email string) domain.User {
	user, err := f.auth.Login(context.Background(), domain.Credentials{Email: email, Password: "secret"})
	if err != nil {
		panic(err)
	}
	return user
}

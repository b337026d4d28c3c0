package service_test

import (
	"context"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type fakeKV struct {
	values map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string][]byte)}
}

func (kv *fakeKV) Load(key string) ([]byte, bool) {
	v, ok := kv.values[key]
	return v, ok
}

func (kv *fakeKV) Save(key string, value []byte) error {
	kv.values[key] = value
	return nil
}

func (kv *fakeKV) Remove(key string) error {
	delete(kv.values, key)
	return nil
}

type fakeCatalog struct {
	products        []domain.Product
	alsoBought      map[string][]string
	completeTheLook map[string][]string
}

func (c *fakeCatalog) ProductByID(id string) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *fakeCatalog) ProductsByCategory(category string) []domain.Product {
	var ps []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			ps = append(ps, p)
		}
	}
	return ps
}

func (c *fakeCatalog) Products() []domain.Product {
	return c.products
}

func (c *fakeCatalog) AlsoBoughtIDs(productID string) []string {
	return c.alsoBought[productID]
}

func (c *fakeCatalog) CompleteTheLookIDs(productID string) []string {
	return c.completeTheLook[productID]
}

type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) Login(
	ctx context.Context, email, password string,
) (domain.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockAuthProvider) Register(
	ctx context.Context, form domain.RegisterForm,
) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func (m *MockAuthProvider) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthProvider) CurrentUser(
	ctx context.Context, accessToken string,
) (domain.User, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockAuthProvider) Refresh(
	ctx context.Context, refreshToken string,
) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

type MockViewsProducer struct {
	mock.Mock
}

func (m *MockViewsProducer) ProduceView(
	ctx context.Context, v domain.ProductView,
) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func testProduct(id, category string, price float64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "product " + id,
		Price:    price,
		Category: category,
		Sizes:    []string{"S", "M", "L"},
		Stock:    10,
		Rating:   4.5,
	}
}

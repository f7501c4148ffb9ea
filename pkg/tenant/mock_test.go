package tenant_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tenantward/tenantward/pkg/tenant"
)

// mockStore is an in-memory tenant store for tests.
type mockStore struct {
	mu      sync.Mutex
	tenants map[string]*tenant.Tenant
	lookups int
}

func newMockStore() *mockStore {
	return &mockStore{tenants: make(map[string]*tenant.Tenant)}
}

func (m *mockStore) add(id string, active bool) *tenant.Tenant {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &tenant.Tenant{ID: id, Name: id, Active: active, CreatedAt: time.Now()}
	m.tenants[id] = t
	return t
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	t, ok := m.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockStore) lookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// failingStore simulates an unavailable tenant store.
type failingStore struct{}

func (failingStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return nil, errors.New("store unavailable")
}

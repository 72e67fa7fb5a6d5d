package session_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/config"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
)

type memUsers struct {
	mu        sync.Mutex
	byID      map[primitive.ObjectID]domain.User
	updateErr error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[primitive.ObjectID]domain.User{}} }

func (r *memUsers) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.byID {
		if x.Email == u.Email {
			return apperr.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	r.byID[u.ID] = *u
	return nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.byID {
		if x.Email == email {
			u := x
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, ok := r.byID[id]; ok {
		return &x, nil
	}
	return nil, nil
}

func (r *memUsers) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memUsers) List(_ context.Context, q listquery.Query) (listquery.Result[domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, x := range r.byID {
		out = append(out, x)
	}
	return listquery.NewResult(out, int64(len(out)), q), nil
}

func (r *memUsers) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// memCache mirrors the Redis cache: it stores a copy without the password hash.
type memCache struct {
	mu sync.Mutex
	m  map[string]domain.User
}

func newMemCache() *memCache { return &memCache{m: map[string]domain.User{}} }

func (c *memCache) Set(_ context.Context, u *domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *u
	cp.PasswordHash = ""
	c.m[u.ID.Hex()] = cp
	return nil
}

func (c *memCache) Get(_ context.Context, id string) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if u, ok := c.m[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (c *memCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, id)
	return nil
}

type mockPub struct{ mock.Mock }

func (p *mockPub) Publish(ctx context.Context, key string, event any, reqID string) error {
	return p.Called(ctx, key, event, reqID).Error(0)
}
func (p *mockPub) Close() error { return nil }

type fakeAssets struct {
	mu      sync.Mutex
	n       int
	deleted []string
	fail    error
}

func (a *fakeAssets) Upload(_ context.Context, folder, _ string) (domain.Asset, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail != nil {
		return domain.Asset{}, a.fail
	}
	a.n++
	id := folder + "/" + string(rune('a'+a.n))
	return domain.Asset{PublicID: id, URL: "https://cdn.test/" + id}, nil
}

func (a *fakeAssets) Delete(_ context.Context, publicID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, publicID)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		ActivationSecret: "activation-secret",
		AccessTTL:        5 * time.Minute,
		RefreshTTL:       72 * time.Hour,
		ActivationTTL:    5 * time.Minute,
	}
}

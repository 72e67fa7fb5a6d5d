package http_test

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
	"github.com/tazhibayda/inventory-service/internal/queue"
)

type memUsers struct {
	mu sync.Mutex
	m  map[primitive.ObjectID]domain.User
}

func (r *memUsers) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.m {
		if x.Email == u.Email {
			return apperr.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	r.m[u.ID] = *u
	return nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.m {
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
	if x, ok := r.m[id]; ok {
		return &x, nil
	}
	return nil, nil
}

func (r *memUsers) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.m[u.ID] = *u
	return nil
}

func (r *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.m, id)
	return nil
}

func (r *memUsers) List(_ context.Context, q listquery.Query) (listquery.Result[domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, x := range r.m {
		out = append(out, x)
	}
	return listquery.NewResult(out, int64(len(out)), q), nil
}

type memCache struct {
	mu sync.Mutex
	m  map[string]domain.User
}

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

// capturePub keeps the last activation event so tests can read the mailed code.
type capturePub struct {
	mu   sync.Mutex
	last queue.ActivationRequested
}

func (p *capturePub) Publish(_ context.Context, key string, event any, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := event.(queue.ActivationRequested); ok && key == queue.KeyActivation {
		p.last = ev
	}
	return nil
}

func (p *capturePub) Close() error { return nil }

func (p *capturePub) code() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last.Code
}

type memCatalog struct {
	kind domain.Kind
	mu   sync.Mutex
	m    map[primitive.ObjectID]domain.CatalogItem
	last listquery.Query
}

func newMemCatalog(k domain.Kind) *memCatalog {
	return &memCatalog{kind: k, m: map[primitive.ObjectID]domain.CatalogItem{}}
}

func (r *memCatalog) Kind() domain.Kind { return r.kind }

func (r *memCatalog) Create(_ context.Context, it *domain.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it.ID = primitive.NewObjectID()
	it.CreatedAt = time.Now().UTC()
	r.m[it.ID] = *it
	return nil
}

func (r *memCatalog) FindByID(_ context.Context, id primitive.ObjectID) (*domain.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, ok := r.m[id]; ok {
		return &x, nil
	}
	return nil, nil
}

func (r *memCatalog) FindByName(_ context.Context, name string) (*domain.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.m {
		if x.Name == name {
			it := x
			return &it, nil
		}
	}
	return nil, nil
}

func (r *memCatalog) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	it, err := r.FindByID(ctx, id)
	return it != nil, err
}

func (r *memCatalog) Update(_ context.Context, it *domain.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[it.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.m[it.ID] = *it
	return nil
}

func (r *memCatalog) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.m, id)
	return nil
}

func (r *memCatalog) List(_ context.Context, q listquery.Query) (listquery.Result[domain.CatalogItem], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = q
	var out []domain.CatalogItem
	for _, x := range r.m {
		out = append(out, x)
	}
	total := int64(len(out))
	if q.Paginated() {
		lo, hi := int(q.Skip()), int(q.Skip()+q.Limit())
		if lo > len(out) {
			lo = len(out)
		}
		if hi > len(out) {
			hi = len(out)
		}
		out = out[lo:hi]
	}
	return listquery.NewResult(out, total, q), nil
}

type memProducts struct {
	mu   sync.Mutex
	m    map[primitive.ObjectID]domain.Product
	last listquery.Query
}

func (r *memProducts) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	r.m[p.ID] = *p
	return nil
}

func (r *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, ok := r.m[id]; ok {
		return &x, nil
	}
	return nil, nil
}

func (r *memProducts) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.m {
		if x.Name == name {
			p := x
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProducts) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[p.ID] = *p
	return nil
}

func (r *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.m, id)
	return nil
}

func (r *memProducts) List(_ context.Context, q listquery.Query) (listquery.Result[domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = q
	var out []domain.Product
	for _, x := range r.m {
		out = append(out, x)
	}
	return listquery.NewResult(out, int64(len(out)), q), nil
}

package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
)

var errDup = errors.New("E11000 duplicate key error index: uniq_name dup key: { name: \"x\" }")

type memCatalog struct {
	mu        sync.Mutex
	kind      domain.Kind
	items     map[primitive.ObjectID]domain.CatalogItem
	updateErr error
}

func newMemCatalog(k domain.Kind) *memCatalog {
	return &memCatalog{kind: k, items: map[primitive.ObjectID]domain.CatalogItem{}}
}

func (r *memCatalog) Kind() domain.Kind { return r.kind }

func (r *memCatalog) Create(_ context.Context, it *domain.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Name == it.Name {
			return errDup
		}
	}
	it.ID = primitive.NewObjectID()
	r.items[it.ID] = *it
	return nil
}

func (r *memCatalog) FindByID(_ context.Context, id primitive.ObjectID) (*domain.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, ok := r.items[id]; ok {
		return &x, nil
	}
	return nil, nil
}

func (r *memCatalog) FindByName(_ context.Context, name string) (*domain.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Name == name {
			return &x, nil
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
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.items[it.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.items[it.ID] = *it
	return nil
}

func (r *memCatalog) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memCatalog) List(_ context.Context, q listquery.Query) (listquery.Result[domain.CatalogItem], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CatalogItem
	for _, x := range r.items {
		out = append(out, x)
	}
	return listquery.NewResult(out, int64(len(out)), q), nil
}

func (r *memCatalog) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type memProducts struct {
	mu        sync.Mutex
	items     map[primitive.ObjectID]domain.Product
	updateErr error
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[primitive.ObjectID]domain.Product{}}
}

func (r *memProducts) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Name == p.Name {
			return errDup
		}
	}
	p.ID = primitive.NewObjectID()
	r.items[p.ID] = *p
	return nil
}

func (r *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, ok := r.items[id]; ok {
		return &x, nil
	}
	return nil, nil
}

func (r *memProducts) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Name == name {
			return &x, nil
		}
	}
	return nil, nil
}

func (r *memProducts) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.items[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memProducts) List(_ context.Context, q listquery.Query) (listquery.Result[domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, x := range r.items {
		out = append(out, x)
	}
	return listquery.NewResult(out, int64(len(out)), q), nil
}

func (r *memProducts) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeAssets struct {
	mu      sync.Mutex
	n       int
	deleted []string
}

func (a *fakeAssets) Upload(_ context.Context, folder, _ string) (domain.Asset, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.n++
	id := fmt.Sprintf("%s/%d", folder, a.n)
	return domain.Asset{PublicID: id, URL: "https://cdn.test/" + id}, nil
}

func (a *fakeAssets) Delete(_ context.Context, publicID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, publicID)
	return nil
}

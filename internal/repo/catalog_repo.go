package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
)

// Catalog stores one of the name/description/avatar collections.
type Catalog struct {
	col  *mongo.Collection
	kind domain.Kind
}

func (s *Store) Catalog(kind domain.Kind) *Catalog {
	return &Catalog{col: s.DB.Collection(kind.Collection()), kind: kind}
}

func (r *Catalog) Kind() domain.Kind { return r.kind }

// Create inserts it; a duplicate name surfaces as a Mongo duplicate-key error.
func (r *Catalog) Create(ctx context.Context, it *domain.CatalogItem) error {
	now := time.Now().UTC()
	it.ID = primitive.NilObjectID
	it.CreatedAt, it.UpdatedAt = now, now
	id, err := insert(ctx, r.col, it)
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

func (r *Catalog) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.CatalogItem, error) {
	return findOne[domain.CatalogItem](ctx, r.col, bson.M{"_id": id})
}

func (r *Catalog) FindByName(ctx context.Context, name string) (*domain.CatalogItem, error) {
	return findOne[domain.CatalogItem](ctx, r.col, bson.M{"name": name})
}

func (r *Catalog) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return exists(ctx, r.col, bson.M{"_id": id})
}

func (r *Catalog) Update(ctx context.Context, it *domain.CatalogItem) error {
	it.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.col, it.ID, it)
}

func (r *Catalog) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *Catalog) List(ctx context.Context, q listquery.Query) (listquery.Result[domain.CatalogItem], error) {
	return List[domain.CatalogItem](ctx, r.col, q)
}

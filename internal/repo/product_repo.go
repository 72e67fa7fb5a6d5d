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

type Products struct{ col *mongo.Collection }

func (s *Store) Products() *Products {
	return &Products{col: s.DB.Collection(domain.ProductsCollection)}
}

func (r *Products) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	p.ID = primitive.NilObjectID
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Images == nil {
		p.Images = []domain.Asset{}
	}
	id, err := insert(ctx, r.col, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *Products) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return findOne[domain.Product](ctx, r.col, bson.M{"_id": id})
}

func (r *Products) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return findOne[domain.Product](ctx, r.col, bson.M{"name": name})
}

func (r *Products) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.col, p.ID, p)
}

func (r *Products) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *Products) List(ctx context.Context, q listquery.Query) (listquery.Result[domain.Product], error) {
	return List[domain.Product](ctx, r.col, q)
}

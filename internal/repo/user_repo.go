package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
)

type Users struct{ col *mongo.Collection }

func (s *Store) Users() *Users { return &Users{col: s.DB.Collection(UsersCollection)} }

func (r *Users) Create(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	u.ID = primitive.NilObjectID
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	id, err := insert(ctx, r.col, u)
	if IsDup(err) {
		return apperr.ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// FindByEmail returns nil, nil when no user has that email.
func (r *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"email": email})
}

func (r *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"_id": id})
}

func (r *Users) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	err := replaceByID(ctx, r.col, u.ID, u)
	if IsDup(err) {
		return apperr.ErrDuplicateEmail
	}
	return err
}

func (r *Users) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *Users) List(ctx context.Context, q listquery.Query) (listquery.Result[domain.User], error) {
	return List[domain.User](ctx, r.col, q)
}

// Package catalog implements the category, status, classification and
// condition collections plus products.
package catalog

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/assets"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/metrics"
)

type Repository interface {
	Kind() domain.Kind
	Create(ctx context.Context, it *domain.CatalogItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.CatalogItem, error)
	FindByName(ctx context.Context, name string) (*domain.CatalogItem, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Update(ctx context.Context, it *domain.CatalogItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q listquery.Query) (listquery.Result[domain.CatalogItem], error)
}

type Service struct {
	repo   Repository
	assets assets.Store
}

func NewService(repo Repository, store assets.Store) *Service {
	return &Service{repo: repo, assets: store}
}

func (s *Service) Kind() domain.Kind { return s.repo.Kind() }

type Input struct {
	Name        string
	Description string
	Avatar      string // base64 data URI, optional
}

// Patch leaves nil fields untouched.
type Patch struct {
	Name        *string
	Description *string
	Avatar      string
}

func (s *Service) label() string { return strings.ToLower(s.repo.Kind().Label()) }

func (s *Service) nameTaken(ctx context.Context, name string, self primitive.ObjectID) error {
	other, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return apperr.Validation("Name %s already exists", s.label())
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.CatalogItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Please enter name %s", s.label())
	}
	if err := s.nameTaken(ctx, name, primitive.NilObjectID); err != nil {
		return nil, err
	}

	it := &domain.CatalogItem{Name: name, Description: strings.TrimSpace(in.Description)}
	if in.Avatar != "" {
		a, err := s.assets.Upload(ctx, string(s.repo.Kind()), in.Avatar)
		if err != nil {
			return nil, err
		}
		it.Avatar = &a
	}
	if err := s.repo.Create(ctx, it); err != nil {
		if it.Avatar != nil {
			_ = s.assets.Delete(ctx, it.Avatar.PublicID)
		}
		return nil, err
	}
	metrics.CatalogWrites.WithLabelValues(string(s.repo.Kind()), "create").Inc()
	return it, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*domain.CatalogItem, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("%s not found", s.repo.Kind().Label())
	}
	return it, nil
}

func (s *Service) Edit(ctx context.Context, rawID string, p Patch) (*domain.CatalogItem, error) {
	it, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, apperr.Validation("Please enter name %s", s.label())
		}
		if err := s.nameTaken(ctx, name, it.ID); err != nil {
			return nil, err
		}
		it.Name = name
	}
	if p.Description != nil {
		it.Description = strings.TrimSpace(*p.Description)
	}

	var old, fresh *domain.Asset
	if p.Avatar != "" {
		a, err := s.assets.Upload(ctx, string(s.repo.Kind()), p.Avatar)
		if err != nil {
			return nil, err
		}
		fresh = &a
		old, it.Avatar = it.Avatar, fresh
	}
	if err := s.repo.Update(ctx, it); err != nil {
		if fresh != nil {
			s.dropAsset(ctx, fresh.PublicID)
		}
		return nil, err
	}
	if old != nil {
		s.dropAsset(ctx, old.PublicID)
	}
	metrics.CatalogWrites.WithLabelValues(string(s.repo.Kind()), "edit").Inc()
	return it, nil
}

func (s *Service) List(ctx context.Context, q listquery.Query) (listquery.Result[domain.CatalogItem], error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	it, err := s.Get(ctx, rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, it.ID); err != nil {
		return err
	}
	if it.Avatar != nil {
		s.dropAsset(ctx, it.Avatar.PublicID)
	}
	metrics.CatalogWrites.WithLabelValues(string(s.repo.Kind()), "delete").Inc()
	return nil
}

// Exists lets products validate references into this collection.
func (s *Service) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *Service) dropAsset(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.assets.Delete(ctx, publicID); err != nil {
		log.WithDD(ctx, log.L()).Warn("asset not deleted", zap.String("public_id", publicID), zap.Error(err))
	}
}

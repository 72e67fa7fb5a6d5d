package catalog

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/assets"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
	"github.com/tazhibayda/inventory-service/internal/metrics"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q listquery.Query) (listquery.Result[domain.Product], error)
}

// Referrer reports whether an id exists in a referenced collection.
type Referrer interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type ProductService struct {
	repo   ProductRepository
	refs   map[domain.Kind]Referrer
	assets assets.Store
}

func NewProductService(repo ProductRepository, refs map[domain.Kind]Referrer, store assets.Store) *ProductService {
	return &ProductService{repo: repo, refs: refs, assets: store}
}

// ProductInput carries hex ids; empty optional ids are left unset.
type ProductInput struct {
	Name           string
	Description    string
	Quantity       int
	Price          float64
	Category       string
	Status         string
	Classification string
	Condition      string
	Images         []string
}

type ProductPatch struct {
	Name           *string
	Description    *string
	Quantity       *int
	Price          *float64
	Category       *string
	Status         *string
	Classification *string
	Condition      *string
	Images         []string
}

// ref resolves a hex id and checks it exists in kind's collection. "" yields NilObjectID.
func (s *ProductService) ref(ctx context.Context, kind domain.Kind, hex string) (primitive.ObjectID, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return primitive.NilObjectID, nil
	}
	id, err := domain.ParseID(hex)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r, ok := s.refs[kind]
	if !ok {
		return id, nil
	}
	found, err := r.Exists(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if !found {
		return primitive.NilObjectID, apperr.Validation("%s not found", kind.Label())
	}
	return id, nil
}

func (s *ProductService) nameTaken(ctx context.Context, name string, self primitive.ObjectID) error {
	other, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return apperr.Validation("Name product already exists")
	}
	return nil
}

func (s *ProductService) upload(ctx context.Context, images []string) ([]domain.Asset, error) {
	out := make([]domain.Asset, 0, len(images))
	for _, img := range images {
		a, err := s.assets.Upload(ctx, assets.FolderProduct, img)
		if err != nil {
			s.drop(ctx, out)
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *ProductService) drop(ctx context.Context, as []domain.Asset) {
	for _, a := range as {
		if a.PublicID != "" {
			_ = s.assets.Delete(ctx, a.PublicID)
		}
	}
}

func validNumbers(qty int, price float64) error {
	if qty < 0 {
		return apperr.Validation("Quantity must not be negative")
	}
	if price < 0 {
		return apperr.Validation("Price must not be negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Please enter name product")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, apperr.Validation("Please choose a product category")
	}
	if err := validNumbers(in.Quantity, in.Price); err != nil {
		return nil, err
	}
	if err := s.nameTaken(ctx, name, primitive.NilObjectID); err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		Price:       in.Price,
	}
	var err error
	if p.Category, err = s.ref(ctx, domain.KindCategory, in.Category); err != nil {
		return nil, err
	}
	if p.Status, err = s.ref(ctx, domain.KindStatus, in.Status); err != nil {
		return nil, err
	}
	if p.Classification, err = s.ref(ctx, domain.KindClassification, in.Classification); err != nil {
		return nil, err
	}
	if p.Condition, err = s.ref(ctx, domain.KindCondition, in.Condition); err != nil {
		return nil, err
	}

	if p.Images, err = s.upload(ctx, in.Images); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.drop(ctx, p.Images)
		return nil, err
	}
	metrics.CatalogWrites.WithLabelValues("product", "create").Inc()
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, rawID string) (*domain.Product, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Product not found")
	}
	return p, nil
}

func (s *ProductService) Edit(ctx context.Context, rawID string, in ProductPatch) (*domain.Product, error) {
	p, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("Please enter name product")
		}
		if err := s.nameTaken(ctx, name, p.ID); err != nil {
			return nil, err
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if err := validNumbers(p.Quantity, p.Price); err != nil {
		return nil, err
	}

	refs := []struct {
		kind domain.Kind
		val  *string
		dst  *primitive.ObjectID
	}{
		{domain.KindCategory, in.Category, &p.Category},
		{domain.KindStatus, in.Status, &p.Status},
		{domain.KindClassification, in.Classification, &p.Classification},
		{domain.KindCondition, in.Condition, &p.Condition},
	}
	for _, r := range refs {
		if r.val == nil {
			continue
		}
		if r.kind == domain.KindCategory && strings.TrimSpace(*r.val) == "" {
			return nil, apperr.Validation("Please choose a product category")
		}
		id, err := s.ref(ctx, r.kind, *r.val)
		if err != nil {
			return nil, err
		}
		*r.dst = id
	}

	var old, fresh []domain.Asset
	if in.Images != nil {
		up, err := s.upload(ctx, in.Images)
		if err != nil {
			return nil, err
		}
		fresh = up
		old, p.Images = p.Images, fresh
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.drop(ctx, fresh)
		return nil, err
	}
	s.drop(ctx, old)
	metrics.CatalogWrites.WithLabelValues("product", "edit").Inc()
	return p, nil
}

func (s *ProductService) List(ctx context.Context, q listquery.Query) (listquery.Result[domain.Product], error) {
	return s.repo.List(ctx, q)
}

func (s *ProductService) Delete(ctx context.Context, rawID string) error {
	p, err := s.Get(ctx, rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.drop(ctx, p.Images)
	metrics.CatalogWrites.WithLabelValues("product", "delete").Inc()
	return nil
}

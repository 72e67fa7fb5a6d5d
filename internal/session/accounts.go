package session

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/helper"
	"github.com/tazhibayda/inventory-service/internal/listquery"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/security"
)

type AccountInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (m *Manager) ListAccounts(ctx context.Context, q listquery.Query) (listquery.Result[domain.User], error) {
	return m.users.List(ctx, q)
}

// CreateAccount adds a verified user directly, bypassing activation.
func (m *Manager) CreateAccount(ctx context.Context, in AccountInput) (*domain.User, error) {
	email := helper.NormalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, apperr.Validation("Invalid role %q", role)
	}
	if err := m.ensureEmailFree(ctx, email, primitive.NilObjectID); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Verified:     true,
		Provider:     domain.ProviderLocal,
	}
	if err := m.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EditAccount applies the non-empty fields. The user's session is dropped so a
// role or password change takes effect on their next login.
func (m *Manager) EditAccount(ctx context.Context, userID string, in AccountInput) (*domain.User, error) {
	u, err := m.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := helper.NormalizeEmail(in.Email); email != "" && email != u.Email {
		if err := m.ensureEmailFree(ctx, email, u.ID); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if in.Password != "" {
		hash, err := security.HashPassword(in.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		u.PasswordHash = hash
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, apperr.Validation("Invalid role %q", in.Role)
		}
		u.Role = in.Role
	}
	if err := m.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := m.cache.Delete(ctx, u.ID.Hex()); err != nil {
		return nil, apperr.Internal(err)
	}
	return u, nil
}

func (m *Manager) DeleteAccount(ctx context.Context, userID string) error {
	u, err := m.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := m.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	if err := m.cache.Delete(ctx, u.ID.Hex()); err != nil {
		return apperr.Internal(err)
	}
	if u.Avatar != nil && u.Avatar.PublicID != "" {
		if err := m.assets.Delete(ctx, u.Avatar.PublicID); err != nil {
			log.WithDD(ctx, log.L()).Warn("avatar not deleted", zap.String("public_id", u.Avatar.PublicID), zap.Error(err))
		}
	}
	return nil
}

// Package session issues and verifies tokens and keeps the session cache that
// gates refresh and authenticated requests.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/assets"
	"github.com/tazhibayda/inventory-service/internal/config"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/helper"
	"github.com/tazhibayda/inventory-service/internal/listquery"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/metrics"
	"github.com/tazhibayda/inventory-service/internal/queue"
	"github.com/tazhibayda/inventory-service/internal/security"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q listquery.Query) (listquery.Result[domain.User], error)
}

// Cache holds one entry per logged-in user. A missing entry means the session is gone.
type Cache interface {
	Set(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type Manager struct {
	cfg    config.Config
	users  UserRepository
	cache  Cache
	events queue.Publisher
	assets assets.Store
}

func NewManager(cfg config.Config, users UserRepository, cache Cache, events queue.Publisher, store assets.Store) *Manager {
	return &Manager{cfg: cfg, users: users, cache: cache, events: events, assets: store}
}

type ActivationTicket struct {
	Token string
	Code  string
}

type Tokens struct {
	Access  string
	Refresh string
	User    *domain.User
}

func (m *Manager) AccessTTL() time.Duration  { return m.cfg.AccessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.cfg.RefreshTTL }

func invalidToken(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrInvalidToken, err)
}

func (m *Manager) IssueActivationToken(draft domain.UserDraft) (ActivationTicket, error) {
	code, err := security.NewActivationCode()
	if err != nil {
		return ActivationTicket{}, apperr.Internal(err)
	}
	tok, err := security.MakeActivation(m.cfg.ActivationSecret, draft, code, m.cfg.ActivationTTL)
	if err != nil {
		return ActivationTicket{}, apperr.Internal(err)
	}
	return ActivationTicket{Token: tok, Code: code}, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register checks the email is free and mails an activation code. No user is stored yet.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (ActivationTicket, error) {
	email := helper.NormalizeEmail(in.Email)
	l := log.WithDD(ctx, log.L(), zap.String("email_hash", helper.Hash8(email)))

	existing, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return ActivationTicket{}, err
	}
	if existing != nil {
		return ActivationTicket{}, apperr.ErrDuplicateEmail
	}

	draft := domain.UserDraft{Name: strings.TrimSpace(in.Name), Email: email, Password: in.Password}
	ticket, err := m.IssueActivationToken(draft)
	if err != nil {
		return ActivationTicket{}, err
	}

	ev := queue.ActivationRequested{Email: email, Name: draft.Name, Code: ticket.Code}
	if err := m.events.Publish(ctx, queue.KeyActivation, ev, helper.RequestID(ctx)); err != nil {
		l.Error("activation mail publish failed", zap.Error(err))
		return ActivationTicket{}, apperr.Upstream(err, "Could not send the activation email, try again")
	}
	l.Info("activation requested")
	return ticket, nil
}

func (m *Manager) Activate(ctx context.Context, token, code string) (*domain.User, error) {
	claims, err := security.ParseActivation(m.cfg.ActivationSecret, token)
	if err != nil {
		return nil, invalidToken(err)
	}
	if claims.Code != code {
		return nil, apperr.ErrCodeMismatch
	}

	email := helper.NormalizeEmail(claims.User.Email)
	existing, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateEmail
	}

	hash, err := security.HashPassword(claims.User.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &domain.User{
		Name:         claims.User.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Verified:     true,
		Provider:     domain.ProviderLocal,
	}
	if err := m.users.Create(ctx, u); err != nil {
		return nil, err
	}

	ev := queue.UserActivated{UserID: u.ID.Hex(), Email: u.Email, Name: u.Name}
	if err := m.events.Publish(ctx, queue.KeyWelcome, ev, helper.RequestID(ctx)); err != nil {
		log.WithDD(ctx, log.L()).Warn("welcome mail publish failed", zap.Error(err))
	}
	return u, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (*Tokens, error) {
	email = helper.NormalizeEmail(email)
	u, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !security.CheckPassword(u.PasswordHash, password) {
		metrics.Logins.WithLabelValues("invalid").Inc()
		return nil, apperr.ErrInvalidCredentials
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	return m.issue(ctx, u)
}

// issue signs a fresh pair and (re)opens the session.
func (m *Manager) issue(ctx context.Context, u *domain.User) (*Tokens, error) {
	id := u.ID.Hex()
	access, err := security.MakeToken(m.cfg.AccessSecret, id, m.cfg.AccessTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refresh, err := security.MakeToken(m.cfg.RefreshSecret, id, m.cfg.RefreshTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := m.cache.Set(ctx, u); err != nil {
		return nil, apperr.Internal(err)
	}
	return &Tokens{Access: access, Refresh: refresh, User: u}, nil
}

// Refresh mints a new pair while the session entry exists. It does not touch the entry.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	if refreshToken == "" {
		return nil, apperr.ErrInvalidToken
	}
	claims, err := security.ParseToken(m.cfg.RefreshSecret, refreshToken)
	if err != nil {
		return nil, invalidToken(err)
	}
	u, err := m.cache.Get(ctx, claims.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.ErrSessionNotFound
	}
	access, err := security.MakeToken(m.cfg.AccessSecret, claims.ID, m.cfg.AccessTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refresh, err := security.MakeToken(m.cfg.RefreshSecret, claims.ID, m.cfg.RefreshTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Tokens{Access: access, Refresh: refresh, User: u}, nil
}

// Logout is idempotent.
func (m *Manager) Logout(ctx context.Context, userID string) error {
	if err := m.cache.Delete(ctx, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Authenticate resolves an access token to the cached user.
func (m *Manager) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, apperr.ErrSessionNotFound
	}
	claims, err := security.ParseToken(m.cfg.AccessSecret, accessToken)
	if err != nil {
		return nil, invalidToken(err)
	}
	return m.CurrentUser(ctx, claims.ID)
}

// CurrentUser reads the session entry only; it never repopulates it from the store.
func (m *Manager) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := m.cache.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.ErrSessionNotFound
	}
	return u, nil
}

type SocialInput struct {
	Email      string
	Name       string
	Avatar     string // URL from the identity provider
	Provider   string
	ExternalID string

	// EmailVerified is set only when the provider proved ownership of Email.
	EmailVerified bool
}

// SocialAuth finds or creates a verified user by email, then logs them in.
// An existing account is only reused when it was created by the same
// non-local provider, or when the provider verified the email.
func (m *Manager) SocialAuth(ctx context.Context, in SocialInput) (*Tokens, error) {
	email := helper.NormalizeEmail(in.Email)
	provider := in.Provider
	if provider == "" {
		provider = domain.ProviderSocial
	}
	u, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u != nil && !in.EmailVerified && (u.Provider == domain.ProviderLocal || u.Provider != provider) {
		log.WithDD(ctx, log.L(), zap.String("email_hash", helper.Hash8(email))).
			Warn("social auth refused", zap.String("provider", provider), zap.String("account_provider", u.Provider))
		return nil, apperr.ErrProviderMismatch
	}
	if u == nil {
		u = &domain.User{
			Name:       strings.TrimSpace(in.Name),
			Email:      email,
			Role:       domain.RoleUser,
			Verified:   true,
			Provider:   provider,
			ExternalID: in.ExternalID,
		}
		if in.Avatar != "" {
			u.Avatar = &domain.Asset{URL: in.Avatar}
		}
		if err := m.users.Create(ctx, u); err != nil {
			return nil, err
		}
		log.WithDD(ctx, log.L(), zap.String("email_hash", helper.Hash8(email))).Info("social user created", zap.String("provider", provider))
	}
	metrics.Logins.WithLabelValues("social").Inc()
	return m.issue(ctx, u)
}

func (m *Manager) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	id, err := domain.ParseID(userID)
	if err != nil {
		return nil, err
	}
	u, err := m.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

// ensureEmailFree fails when another user already owns email.
func (m *Manager) ensureEmailFree(ctx context.Context, email string, self primitive.ObjectID) error {
	other, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return apperr.ErrDuplicateEmail
	}
	return nil
}

type ProfileInput struct {
	Name  string
	Email string
}

func (m *Manager) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	u, err := m.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email := helper.NormalizeEmail(in.Email); email != "" && email != u.Email {
		if err := m.ensureEmailFree(ctx, email, u.ID); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	return m.save(ctx, u)
}

func (m *Manager) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error) {
	u, err := m.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, apperr.Validation("Invalid user")
	}
	if !security.CheckPassword(u.PasswordHash, oldPassword) {
		return nil, apperr.ErrOldPassword
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u.PasswordHash = hash
	return m.save(ctx, u)
}

// UpdateAvatar uploads the new image before dropping the old one.
func (m *Manager) UpdateAvatar(ctx context.Context, userID, dataURI string) (*domain.User, error) {
	u, err := m.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	asset, err := m.assets.Upload(ctx, assets.FolderAvatars, dataURI)
	if err != nil {
		return nil, err
	}
	old := u.Avatar
	u.Avatar = &asset
	if err := m.users.Update(ctx, u); err != nil {
		if asset.PublicID != "" {
			_ = m.assets.Delete(ctx, asset.PublicID)
		}
		return nil, err
	}
	if err := m.cache.Set(ctx, u); err != nil {
		return nil, apperr.Internal(err)
	}
	if old != nil && old.PublicID != "" {
		if err := m.assets.Delete(ctx, old.PublicID); err != nil {
			log.WithDD(ctx, log.L()).Warn("old avatar not deleted", zap.String("public_id", old.PublicID), zap.Error(err))
		}
	}
	return u, nil
}

// save persists u and rewrites its session entry.
func (m *Manager) save(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := m.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := m.cache.Set(ctx, u); err != nil {
		return nil, apperr.Internal(err)
	}
	return u, nil
}


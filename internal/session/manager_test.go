package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/queue"
	"github.com/tazhibayda/inventory-service/internal/security"
	"github.com/tazhibayda/inventory-service/internal/session"
)

type env struct {
	m      *session.Manager
	users  *memUsers
	cache  *memCache
	pub    *mockPub
	assets *fakeAssets
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{users: newMemUsers(), cache: newMemCache(), pub: &mockPub{}, assets: &fakeAssets{}}
	e.m = session.NewManager(testConfig(), e.users, e.cache, e.pub, e.assets)
	return e
}

// register runs registration + activation and returns the stored user.
func (e *env) register(t *testing.T, name, email, password string) *domain.User {
	t.Helper()
	ctx := context.Background()
	e.pub.On("Publish", mock.Anything, queue.KeyActivation, mock.Anything, mock.Anything).Return(nil).Once()
	e.pub.On("Publish", mock.Anything, queue.KeyWelcome, mock.Anything, mock.Anything).Return(nil).Once()

	ticket, err := e.m.Register(ctx, session.RegisterInput{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	u, err := e.m.Activate(ctx, ticket.Token, ticket.Code)
	require.NoError(t, err)
	return u
}

func TestRegister_IssuesFiveMinuteToken(t *testing.T) {
	e := newEnv(t)
	e.pub.On("Publish", mock.Anything, queue.KeyActivation, mock.MatchedBy(func(ev queue.ActivationRequested) bool {
		return ev.Email == "ann@example.com" && ev.Name == "Ann" && len(ev.Code) == 4
	}), mock.Anything).Return(nil).Once()

	ticket, err := e.m.Register(context.Background(), session.RegisterInput{Name: " Ann ", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}$`, ticket.Code)

	claims, err := security.ParseActivation("activation-secret", ticket.Token)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.Equal(t, ticket.Code, claims.Code)
	assert.Equal(t, "ann@example.com", claims.User.Email)

	assert.Equal(t, 0, e.users.count(), "nothing is stored before activation")
	e.pub.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Ann", "ann@example.com", "secret1")

	_, err := e.m.Register(context.Background(), session.RegisterInput{Name: "Other", Email: "ann@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
}

func TestRegister_PublishFailureIsUpstream(t *testing.T) {
	e := newEnv(t)
	e.pub.On("Publish", mock.Anything, queue.KeyActivation, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := e.m.Register(context.Background(), session.RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestActivate_CodeMismatchCreatesNothing(t *testing.T) {
	e := newEnv(t)
	ticket, err := e.m.IssueActivationToken(domain.UserDraft{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	wrong := "0000"
	if ticket.Code == wrong {
		wrong = "1111"
	}
	_, err = e.m.Activate(context.Background(), ticket.Token, wrong)
	assert.ErrorIs(t, err, apperr.ErrCodeMismatch)
	assert.Equal(t, 0, e.users.count())
	e.pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestActivate_BadToken(t *testing.T) {
	e := newEnv(t)
	_, err := e.m.Activate(context.Background(), "garbage", "1234")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestActivate_CreatesVerifiedUser(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "Ann", "ann@example.com", "secret1")

	assert.True(t, u.Verified)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.True(t, security.CheckPassword(u.PasswordHash, "secret1"))
	assert.Equal(t, 1, e.users.count())
	e.pub.AssertExpectations(t)
}

func TestLogin_PopulatesSession(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "Ann", "ann@example.com", "secret1")

	tok, err := e.m.Login(context.Background(), "ANN@example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Access)
	assert.NotEmpty(t, tok.Refresh)
	assert.Equal(t, u.ID, tok.User.ID)

	c, err := security.ParseToken("access-secret", tok.Access)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), c.ID)

	cached, err := e.cache.Get(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "ann@example.com", cached.Email)
	assert.Empty(t, cached.PasswordHash)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Ann", "ann@example.com", "secret1")

	_, err := e.m.Login(context.Background(), "ann@example.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = e.m.Login(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRefresh_AfterLogoutFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "Ann", "ann@example.com", "secret1")

	tok, err := e.m.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)

	again, err := e.m.Refresh(ctx, tok.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, again.Access)
	assert.Equal(t, u.ID, again.User.ID)

	require.NoError(t, e.m.Logout(ctx, u.ID.Hex()))
	require.NoError(t, e.m.Logout(ctx, u.ID.Hex()), "logout is idempotent")

	_, err = e.m.Refresh(ctx, tok.Refresh)
	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)
}

func TestRefresh_Invalid(t *testing.T) {
	e := newEnv(t)
	_, err := e.m.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	access, err := security.MakeToken("access-secret", "64b7f0c2a1b2c3d4e5f60718", time.Minute)
	require.NoError(t, err)
	_, err = e.m.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken, "access token is not a refresh token")

	expired, err := security.MakeToken("refresh-secret", "64b7f0c2a1b2c3d4e5f60718", -time.Minute)
	require.NoError(t, err)
	_, err = e.m.Refresh(context.Background(), expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "Ann", "ann@example.com", "secret1")

	_, err := e.m.Authenticate(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)

	tok, err := e.m.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)

	got, err := e.m.Authenticate(ctx, tok.Access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, e.m.Logout(ctx, u.ID.Hex()))
	_, err = e.m.Authenticate(ctx, tok.Access)
	assert.ErrorIs(t, err, apperr.ErrSessionNotFound)
}

func TestSocialAuth_FindOrCreate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	in := session.SocialInput{Email: "g@example.com", Name: "G", Avatar: "https://img.test/g.png"}

	first, err := e.m.SocialAuth(ctx, in)
	require.NoError(t, err)
	assert.True(t, first.User.Verified)
	assert.Equal(t, domain.ProviderSocial, first.User.Provider)
	require.NotNil(t, first.User.Avatar)
	assert.Equal(t, "https://img.test/g.png", first.User.Avatar.URL)

	second, err := e.m.SocialAuth(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, e.users.count())

	_, err = e.m.Login(ctx, "g@example.com", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials, "social users have no password")
}

func TestSocialAuth_ExistingAccountProvider(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann := e.register(t, "Ann", "ann@example.com", "secret1")

	_, err := e.m.SocialAuth(ctx, session.SocialInput{Email: "ann@example.com", Name: "x"})
	assert.ErrorIs(t, err, apperr.ErrProviderMismatch)

	_, err = e.m.SocialAuth(ctx, session.SocialInput{
		Email: "ann@example.com", Name: "x", Provider: domain.ProviderGoogle, ExternalID: "sub-1",
	})
	assert.ErrorIs(t, err, apperr.ErrProviderMismatch, "unverified google email")

	tok, err := e.m.SocialAuth(ctx, session.SocialInput{
		Email: "ann@example.com", Name: "x", Provider: domain.ProviderGoogle, ExternalID: "sub-1", EmailVerified: true,
	})
	require.NoError(t, err)
	assert.Equal(t, ann.ID, tok.User.ID)

	_, err = e.m.SocialAuth(ctx, session.SocialInput{Email: "g@example.com", Name: "G", Provider: domain.ProviderGoogle})
	require.NoError(t, err)
	_, err = e.m.SocialAuth(ctx, session.SocialInput{Email: "g@example.com", Name: "G"})
	assert.ErrorIs(t, err, apperr.ErrProviderMismatch, "social cannot reuse a google account")
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann := e.register(t, "Ann", "ann@example.com", "secret1")
	e.register(t, "Bo", "bo@example.com", "secret2")

	_, err := e.m.UpdateProfile(ctx, ann.ID.Hex(), session.ProfileInput{Email: "bo@example.com"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)

	u, err := e.m.UpdateProfile(ctx, ann.ID.Hex(), session.ProfileInput{Name: "Annie", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Annie", u.Name)

	cached, _ := e.cache.Get(ctx, ann.ID.Hex())
	require.NotNil(t, cached)
	assert.Equal(t, "Annie", cached.Name)

	_, err = e.m.UpdateProfile(ctx, "bad-id", session.ProfileInput{Name: "x"})
	assert.ErrorIs(t, err, apperr.ErrInvalidID)
}

func TestUpdatePassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "Ann", "ann@example.com", "secret1")

	_, err := e.m.UpdatePassword(ctx, u.ID.Hex(), "wrong", "secret9")
	assert.ErrorIs(t, err, apperr.ErrOldPassword)

	_, err = e.m.UpdatePassword(ctx, u.ID.Hex(), "secret1", "secret9")
	require.NoError(t, err)

	_, err = e.m.Login(ctx, "ann@example.com", "secret9")
	assert.NoError(t, err)
}

func TestUpdateAvatar_ReplacesOld(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "Ann", "ann@example.com", "secret1")

	first, err := e.m.UpdateAvatar(ctx, u.ID.Hex(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.NotNil(t, first.Avatar)
	oldID := first.Avatar.PublicID

	second, err := e.m.UpdateAvatar(ctx, u.ID.Hex(), "data:image/png;base64,BBBB")
	require.NoError(t, err)
	assert.NotEqual(t, oldID, second.Avatar.PublicID)
	assert.Equal(t, []string{oldID}, e.assets.deleted)

	e.assets.fail = apperr.Upstream(errors.New("s3"), "Image upload failed")
	_, err = e.m.UpdateAvatar(ctx, u.ID.Hex(), "data:image/png;base64,CCCC")
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestUpdateAvatar_StoreFailureDropsUpload(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "Ann", "ann@example.com", "secret1")

	e.users.updateErr = apperr.ErrNotFound
	_, err := e.m.UpdateAvatar(ctx, u.ID.Hex(), "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.Len(t, e.assets.deleted, 1)
}

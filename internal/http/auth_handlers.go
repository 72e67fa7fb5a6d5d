package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/security"
	"github.com/tazhibayda/inventory-service/internal/session"
)

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email_addr"`
	Password string `json:"password" binding:"required,min=6"`
}

// Registration godoc
// @Summary Start registration and mail an activation code
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerReq true "register"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /registration [post]
func (h *Handler) Registration(c *gin.Context) {
	var in registerReq
	if !bindJSON(c, &in) {
		return
	}
	ticket, err := h.Sessions.Register(c.Request.Context(), session.RegisterInput{
		Name: in.Name, Email: in.Email, Password: in.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"message":         "Please check your email: " + in.Email + " to activate account",
		"activationToken": ticket.Token,
	})
}

type activationReq struct {
	Token string `json:"activation_token" binding:"required"`
	Code  string `json:"activation_code" binding:"required"`
}

// ActivateUser godoc
// @Summary Confirm the activation code and create the account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body activationReq true "activation"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /activation-user [post]
func (h *Handler) ActivateUser(c *gin.Context) {
	var in activationReq
	if !bindJSON(c, &in) {
		return
	}
	if _, err := h.Sessions.Activate(c.Request.Context(), in.Token, in.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.Sessions.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.sendTokens(c, http.StatusOK, t)
}

func (h *Handler) sendTokens(c *gin.Context, status int, t *session.Tokens) {
	h.setTokenCookies(c, t.Access, t.Refresh)
	c.JSON(status, gin.H{"success": true, "user": t.User, "accessToken": t.Access})
}

// Logout godoc
// @Summary Drop the session and clear token cookies
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /logout [get]
func (h *Handler) Logout(c *gin.Context) {
	u := currentUser(c)
	if err := h.Sessions.Logout(c.Request.Context(), u.ID.Hex()); err != nil {
		respondError(c, err)
		return
	}
	h.clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successfully"})
}

// RefreshToken godoc
// @Summary Mint a new token pair from the refresh_token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /refresh [get]
func (h *Handler) RefreshToken(c *gin.Context) {
	rt, _ := c.Cookie(cookieRefresh)
	t, err := h.Sessions.Refresh(c.Request.Context(), rt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set(ctxUser, t.User)
	h.setTokenCookies(c, t.Access, t.Refresh)
	c.JSON(http.StatusOK, gin.H{"success": true, "accessToken": t.Access})
}

// UserInfo godoc
// @Summary Current user from the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /user [get]
func (h *Handler) UserInfo(c *gin.Context) {
	u, err := h.Sessions.CurrentUser(c.Request.Context(), currentUser(c).ID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

type socialReq struct {
	Email  string `json:"email" binding:"required,email_addr"`
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

// SocialAuth godoc
// @Summary Find or create a user from a social identity and log in
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body socialReq true "social identity"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /social-auth [post]
func (h *Handler) SocialAuth(c *gin.Context) {
	var in socialReq
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.Sessions.SocialAuth(c.Request.Context(), session.SocialInput{
		Email: in.Email, Name: in.Name, Avatar: in.Avatar, Provider: domain.ProviderSocial,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.sendTokens(c, http.StatusOK, t)
}

const (
	cookieOAuthState = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

// GoogleLogin godoc
// @Summary Redirect to Google consent
// @Tags auth
// @Success 302
// @Router /auth/google/login [get]
func (h *Handler) GoogleLogin(c *gin.Context) {
	if h.Google == nil {
		respondError(c, apperr.NotFound("Google login is not configured"))
		return
	}
	nonce, err := security.NewState()
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}
	state := h.Google.MakeState(nonce)
	h.setCookie(c, cookieOAuthState, state, oauthStateTTL)
	c.Redirect(http.StatusFound, h.Google.AuthURL(state))
}

// GoogleCallback godoc
// @Summary Google OAuth callback, logs the user in
// @Tags auth
// @Produce json
// @Param state query string true "state"
// @Param code query string true "authorization code"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /auth/google/callback [get]
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.Google == nil {
		respondError(c, apperr.NotFound("Google login is not configured"))
		return
	}
	state := c.Query("state")
	saved, _ := c.Cookie(cookieOAuthState)
	if state == "" || state != saved || !h.Google.VerifyState(state) {
		respondError(c, apperr.Validation("Invalid oauth state"))
		return
	}
	code := c.Query("code")
	if code == "" {
		respondError(c, apperr.Validation("Missing authorization code"))
		return
	}
	gu, err := h.Google.Exchange(c.Request.Context(), code)
	if err != nil {
		respondError(c, apperr.Upstream(err, "Google sign in failed"))
		return
	}
	t, err := h.Sessions.SocialAuth(c.Request.Context(), session.SocialInput{
		Email: gu.Email, Name: gu.Name, Avatar: gu.Picture,
		Provider: domain.ProviderGoogle, ExternalID: gu.Sub, EmailVerified: gu.EmailVerified,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.setCookie(c, cookieOAuthState, "", -time.Second)
	h.sendTokens(c, http.StatusOK, t)
}

type profileReq struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email_addr"`
}

// UpdateUserInfo godoc
// @Summary Update name or email of the current user
// @Tags user
// @Accept json
// @Produce json
// @Param payload body profileReq true "profile"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /user [put]
func (h *Handler) UpdateUserInfo(c *gin.Context) {
	var in profileReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Sessions.UpdateProfile(c.Request.Context(), currentUser(c).ID.Hex(),
		session.ProfileInput{Name: in.Name, Email: in.Email})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u})
}

type passwordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdatePassword godoc
// @Summary Change the current user's password
// @Tags user
// @Accept json
// @Produce json
// @Param payload body passwordReq true "passwords"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /update-password [put]
func (h *Handler) UpdatePassword(c *gin.Context) {
	var in passwordReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Sessions.UpdatePassword(c.Request.Context(), currentUser(c).ID.Hex(), in.OldPassword, in.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u})
}

type avatarReq struct {
	Avatar string `json:"avatar" binding:"required"`
}

// UpdateAvatar godoc
// @Summary Replace the current user's avatar (base64 data URI)
// @Tags user
// @Accept json
// @Produce json
// @Param payload body avatarReq true "avatar"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /update-avatar [put]
func (h *Handler) UpdateAvatar(c *gin.Context) {
	var in avatarReq
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Sessions.UpdateAvatar(c.Request.Context(), currentUser(c).ID.Hex(), in.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	cookieAccess  = "access_token"
	cookieRefresh = "refresh_token"
)

// setCookie writes an httpOnly, lax cookie on "/". A negative ttl deletes it.
func (h *Handler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.Secure, true)
}

func (h *Handler) setTokenCookies(c *gin.Context, access, refresh string) {
	h.setCookie(c, cookieAccess, access, h.Sessions.AccessTTL())
	h.setCookie(c, cookieRefresh, refresh, h.Sessions.RefreshTTL())
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	h.setCookie(c, cookieAccess, "", -time.Second)
	h.setCookie(c, cookieRefresh, "", -time.Second)
}

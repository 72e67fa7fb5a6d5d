package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/inventory-service/internal/catalog"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/oauth"
	"github.com/tazhibayda/inventory-service/internal/session"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Sessions        *session.Manager
	Catalogs        map[domain.Kind]*catalog.Service
	Products        *catalog.ProductService
	Google          *oauth.Google // nil when Google login is not configured
	Checks          map[string]Pinger
	Secure          bool
	RateLimitPerMin int
	CORSOrigins     []string
	TraceService    string // empty disables the gin tracing middleware
}

func NewHandler(sessions *session.Manager, catalogs map[domain.Kind]*catalog.Service, products *catalog.ProductService) *Handler {
	return &Handler{
		Sessions:        sessions,
		Catalogs:        catalogs,
		Products:        products,
		Checks:          map[string]Pinger{},
		RateLimitPerMin: 20,
	}
}

// Healthz godoc
// @Summary Liveness and dependency check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := gin.H{}
	status, code := "ok", http.StatusOK
	for name, p := range h.Checks {
		if err := p.Ping(ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	c.JSON(code, gin.H{"status": status, "deps": deps})
}

func (h *Handler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "API is working"})
}

func (h *Handler) NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route " + c.Request.URL.RequestURI() + " not found"})
}

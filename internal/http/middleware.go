package http

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/helper"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/metrics"
	"github.com/tazhibayda/inventory-service/internal/session"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxUser         = "user"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Request = c.Request.WithContext(helper.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l := log.Ctx(c.Request.Context(),
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ClientIP(c)),
		)
		if c.Writer.Status() >= http.StatusInternalServerError {
			l.Error("request")
			return
		}
		l.Info("request")
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.InFlight.Inc()
		start := time.Now()
		defer metrics.InFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// CORS adapts go-chi/cors to gin. Preflight requests are answered by cors and never reach the router.
func CORS(origins []string) gin.HandlerFunc {
	mw := cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", headerRequestID},
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return func(c *gin.Context) {
		passed := false
		mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	swept    time.Time
}

// NewRateLimiter allows n requests per window for each IP, refilling continuously.
func NewRateLimiter(n int, window time.Duration) *RateLimiter {
	if n <= 0 {
		n = 20
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(n) / window.Seconds()),
		burst:    n,
		idle:     10 * time.Minute,
		swept:    time.Now(),
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.swept) > rl.idle {
		for k, v := range rl.visitors {
			if now.Sub(v.seen) > rl.idle {
				delete(rl.visitors, k)
			}
		}
		rl.swept = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

func ClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}

func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(ClientIP(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many requests, try again later"})
			return
		}
		c.Next()
	}
}

func bearer(c *gin.Context) string {
	if tok, err := c.Cookie(cookieAccess); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// AuthCookie resolves the access token (cookie first, then bearer header) to the session user.
func AuthCookie(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := m.Authenticate(c.Request.Context(), bearer(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			respondError(c, apperr.ErrSessionNotFound)
			return
		}
		if !u.HasRole(roles...) {
			respondError(c, apperr.Wrap(apperr.KindAuth, apperr.ErrForbidden,
				fmt.Sprintf("Role: %s is not allowed to access this resource", u.Role)))
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

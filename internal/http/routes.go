package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"

	"github.com/tazhibayda/inventory-service/internal/domain"
)

var (
	anyRole   = []string{domain.RoleAdmin, domain.RoleManagement, domain.RoleUser}
	staffRole = []string{domain.RoleAdmin, domain.RoleManagement}
)

func NewRouter(h *Handler) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLog())
	r.Use(Metrics())
	if h.TraceService != "" {
		r.Use(gintrace.Middleware(h.TraceService))
	}
	if len(h.CORSOrigins) > 0 {
		r.Use(CORS(h.CORSOrigins))
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/test", h.Test)
	r.NoRoute(h.NoRoute)

	rl := NewRateLimiter(h.RateLimitPerMin, time.Minute)
	auth := AuthCookie(h.Sessions)

	api := r.Group("/api/v1")
	api.GET("/test", h.Test)

	pub := api.Group("", RateLimit(rl))
	{
		pub.POST("/registration", h.Registration)
		pub.POST("/activation-user", h.ActivateUser)
		pub.POST("/login", h.Login)
		pub.GET("/refresh", h.RefreshToken)
		pub.POST("/social-auth", h.SocialAuth)
		pub.GET("/auth/google/login", h.GoogleLogin)
		pub.GET("/auth/google/callback", h.GoogleCallback)
	}

	me := api.Group("", auth)
	{
		me.GET("/logout", h.Logout)
		me.GET("/user", h.UserInfo)
		me.PUT("/user", h.UpdateUserInfo)
		me.PUT("/update-password", h.UpdatePassword)
		me.PUT("/update-avatar", h.UpdateAvatar)
	}

	admin := api.Group("/accounts", auth, RequireRoles(domain.RoleAdmin))
	{
		admin.GET("", h.ListAccounts)
		admin.POST("", h.CreateAccount)
		admin.PUT("/:id", h.EditAccount)
		admin.DELETE("/:id", h.DeleteAccount)
	}

	for _, kind := range domain.Kinds {
		svc, ok := h.Catalogs[kind]
		if !ok {
			continue
		}
		ch := catalogHandler{svc: svc}
		g := api.Group("/"+kind.Collection(), auth, RequireRoles(anyRole...))
		g.POST("/create", ch.Create)
		g.PUT("/edit/:id", ch.Edit)
		g.GET("/:id", ch.Get)
		g.GET("", ch.List)
		g.DELETE("/:id", ch.Delete)
	}

	if h.Products != nil {
		g := api.Group("/"+domain.ProductsCollection, auth)
		g.POST("/create", RequireRoles(staffRole...), h.CreateProduct)
		g.PUT("/edit/:id", RequireRoles(staffRole...), h.EditProduct)
		g.GET("/:id", RequireRoles(anyRole...), h.GetProduct)
		g.GET("", RequireRoles(anyRole...), h.ListProducts)
		g.DELETE("/:id", RequireRoles(staffRole...), h.DeleteProduct)
	}

	return r
}

package router

import (
	"time"

	"smartcart/internal/auth"
	"smartcart/internal/middleware"
	"smartcart/internal/pricing"
	"smartcart/internal/trip"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth    *auth.Handler
	Trips   *trip.Handler
	Pricing *pricing.Handler
}

func NewRouter(h Handlers, corsOrigins []string, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// ───────────────────────── TRIPS ─────────────────────────
	trips := r.Group("/trips")
	trips.Use(middleware.AuthMiddleware())
	{
		trips.POST("", h.Trips.Optimize)
		trips.GET("/me", h.Trips.ListMine)
		trips.GET("/:id", h.Trips.Get)
	}

	// ───────────────────────── PRICES ─────────────────────────
	r.GET("/prices", h.Pricing.List)

	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.PUT("/prices", h.Pricing.Upsert)
	}

	return r
}

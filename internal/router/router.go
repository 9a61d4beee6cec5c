package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/config"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/handler"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/middleware"
)

// RegisterRoutes wires the endpoints that need no authentication: the
// health check, uploaded media and the public catalogue.  Catalogue GETs
// sit behind the Redis response cache so directory and agenda pages do
// not hammer the database.
func RegisterRoutes(e *echo.Echo, p *handler.PublicHandler, uploadsRoot string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Uploaded logos and event photos are served straight from disk.
	e.Static("/uploads", uploadsRoot)

	pub := e.Group("/v1", middleware.NewRedisCache(cacheCfg, rdb))
	pub.GET("/entities", p.ListEntities)
	pub.GET("/entities/:id", p.GetEntity)
	pub.GET("/events", p.ListEvents)
	pub.GET("/events/:id", p.GetEvent)
	pub.GET("/rooms", p.ListRooms)
	pub.GET("/rooms/:id", p.GetRoom)
	pub.GET("/companies", p.ListCompanies)
}

// RegisterAuth wires registration, login and token lifecycle endpoints.
// Unauthenticated operations live under /v1/auth; /v1/me and the profile
// update require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout works without the JWT middleware so a session whose access
	// token already expired can still end itself with its refresh token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateProfile)
}

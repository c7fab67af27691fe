package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastianBuritica/logistics-ai/internal/http/handlers"
	"github.com/SebastianBuritica/logistics-ai/internal/http/middleware"
	"github.com/SebastianBuritica/logistics-ai/internal/routes"
)

// BuildRouter wires the auth endpoints and the guarded page routes.
func BuildRouter(ah *handlers.AuthHandlers, guard *middleware.GuardMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/logout", ah.Logout)
	auth.POST("/oauth", ah.OAuth)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/resend-verification", ah.ResendVerification)
	auth.PATCH("/profile", ah.UpdateProfile)
	auth.POST("/avatar", ah.UploadAvatar)
	auth.DELETE("/error", ah.ClearError)
	auth.GET("/me", ah.Me)
	auth.GET("/permissions/:name", ah.Permission)

	// Page routes: each table entry wrapped with its guard. What renders is
	// the route's metadata; the visuals live in the frontend.
	for _, route := range routes.Table {
		r.GET(route.Path, guard.Guard(route.Guard), pageHandler(route))
	}
	r.NoRoute(pageHandler(routes.Lookup(routes.PathNotFound)))

	return r
}

func pageHandler(route routes.Route) gin.HandlerFunc {
	status := http.StatusOK
	if route.Path == routes.PathNotFound {
		status = http.StatusNotFound
	}
	return func(c *gin.Context) {
		c.JSON(status, gin.H{
			"path":        route.Path,
			"title":       route.Title,
			"description": route.Description,
		})
	}
}

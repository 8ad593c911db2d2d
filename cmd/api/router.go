package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"itemize/internal/shared/middleware"
	"itemize/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	setupUserRoutes(router, c)
	setupItemizeRoutes(router, c)
	setupMetadataRoutes(router, c)

	return router
}

func setupUserRoutes(r *gin.Engine, c *container.Container) {
	users := r.Group("/users")
	{
		users.POST("", c.UserHandler.Signup)
		users.POST("/login", c.UserHandler.Login)
		users.GET("/check/:identifier", c.UserHandler.Check)
	}
}

func setupItemizeRoutes(r *gin.Engine, c *container.Container) {
	auth := middleware.Auth(c.JWTManager)
	optionalAuth := middleware.OptionalAuth(c.JWTManager)
	owner := middleware.RequireOwner()

	it := r.Group("/itemize/:username")
	{
		// Reads are public for public itemizes; the viewer identity only
		// widens what is visible.
		it.GET("", optionalAuth, c.ItemizeHandler.List)
		it.GET("/:slug", optionalAuth, c.ItemizeHandler.Get)

		it.POST("", auth, owner, c.ItemizeHandler.Create)
		it.PATCH("/:slug", auth, owner, c.ItemizeHandler.Update)
		it.POST("/:slug", auth, owner, c.ItemizeHandler.AddLink)
		it.PATCH("/:slug/:id", auth, owner, c.ItemizeHandler.UpdateLink)
		it.DELETE("/:slug/:id", auth, owner, c.ItemizeHandler.DeleteLink)
	}
}

func setupMetadataRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/metadata/images/:id", c.ImageHandler.GetImage)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		cacheStatus := "up"
		if c.Cache == nil {
			cacheStatus = "disabled"
		} else if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}
		ctx.JSON(status, gin.H{
			"status":    dbStatus,
			"cache":     cacheStatus,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

package app

import (
	"log/slog"
	"net/http"

	_ "tasktracker/docs"
	"tasktracker/internal/config"
	"tasktracker/internal/handlers"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, svc *service.TaskService, log *slog.Logger) {
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	r.GET("/api", apiInfoHandler(cfg))
	registerTaskRoutes(r.Group("/api/tasks"), handlers.NewTaskHandler(svc, log))
	registerPageRoutes(r, handlers.NewPageHandler(svc, log))
}

func apiInfoHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Task Tracker API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"tasks":   "/api/tasks/",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/", h.List)
	api.POST("/", h.Create)
	api.GET("/:id/", h.Get)
	api.PUT("/:id/", h.Replace)
	api.PATCH("/:id/", h.Patch)
	api.DELETE("/:id/", h.Delete)
}

func registerPageRoutes(r *gin.Engine, h *handlers.PageHandler) {
	r.GET("/", h.List)
	r.GET("/add/", h.Add)
	r.POST("/add/", h.Add)
	r.GET("/edit/:id/", h.Edit)
	r.POST("/edit/:id/", h.Edit)
}

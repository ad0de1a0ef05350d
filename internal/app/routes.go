package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"taskvault/internal/auth"
	"taskvault/internal/cache"
	"taskvault/internal/config"
	"taskvault/internal/handlers"
	"taskvault/internal/notify"
	"taskvault/internal/repo"
	"taskvault/internal/service"
)

// Setup registers all routes on the given engine. Collaborators are wired
// here, constructor by constructor; there is no registry or container.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	userHandler := handlers.NewUserHandler(userSvc)
	registerUserRoutes(r, userHandler)

	taskRepo := repo.NewPGTaskRepo(db)
	taskCache := cache.NewTaskCache(rdb, cfg.Redis.CacheTTL.Duration())
	notifier := notify.NewRedisNotifier(rdb, cfg.Redis.NotifyChannel)
	taskSvc := service.NewTaskService(taskRepo, taskCache, notifier)
	taskHandler := handlers.NewTaskHandler(taskSvc)

	protected := r.Group("/tasks", auth.RequireBasicAuth(userSvc))
	registerTaskRoutes(protected, taskHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "TaskVault API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTaskRoutes(g *gin.RouterGroup, h *handlers.TaskHandler) {
	g.POST("/", h.Create)
	g.GET("/", h.List)
	g.GET("/:taskId", h.GetByID)
	g.PUT("/:taskId", h.Update)
	g.DELETE("/:taskId", h.Delete)
	g.POST("/:taskId/complete", h.Complete)
}

func registerUserRoutes(r *gin.Engine, h *handlers.UserHandler) {
	r.POST("/users/", h.Create)
	r.GET("/users/:userId", h.GetByID)
	r.PUT("/users/:userId", h.Update)
	r.DELETE("/users/:userId", h.Delete)
}

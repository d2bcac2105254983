package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/siscolar/registro-backend/internal/config"
	"github.com/siscolar/registro-backend/internal/handler"
	"github.com/siscolar/registro-backend/internal/middleware"
	"github.com/siscolar/registro-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student *handler.StudentHandler
	Subject *handler.SubjectHandler
	Grade   *handler.GradeHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	}))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response can be traced.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for mutating routes (60 requests per minute per IP).
	writeLimiter := middleware.NewRateLimiter(60, time.Minute)
	limited := writeLimiter.Middleware()

	// ─── 1. Alumnos ────────────────────────────────────────────────────
	alumnos := router.Group("/alumnos")
	{
		alumnos.GET("", handlers.Student.List)
		alumnos.GET("/:id", handlers.Student.Get)
		alumnos.POST("", limited, handlers.Student.Create)
		alumnos.PUT("/:id", limited, handlers.Student.Update)
		alumnos.DELETE("/:id", limited, handlers.Student.Delete)
	}

	// ─── 2. Materias ───────────────────────────────────────────────────
	materias := router.Group("/materias")
	{
		materias.GET("", handlers.Subject.List)
		materias.GET("/:id", handlers.Subject.Get)
		materias.POST("", limited, handlers.Subject.Create)
		materias.PUT("/:id", limited, handlers.Subject.Update)
		materias.DELETE("/:id", limited, handlers.Subject.Delete)
	}

	// ─── 3. Calificaciones ─────────────────────────────────────────────
	calificaciones := router.Group("/calificaciones/:alumnoId/:materiaId")
	{
		calificaciones.GET("", handlers.Grade.Get)
		calificaciones.POST("", limited, handlers.Grade.Add)
		calificaciones.PUT("", limited, handlers.Grade.Update)
		calificaciones.DELETE("", limited, handlers.Grade.Delete)
	}

	// Unknown routes answer with the same error envelope as everything else.
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrRouteNotFound)
	})

	return router
}

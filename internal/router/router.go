package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/config"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/handler"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/infra"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/middleware"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/repository"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/service"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	cerrojo := infra.NewCerrojo(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	corteRepo := repository.NewCorteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	turnoSvc := service.NewTurnoService(turnoRepo, ventaRepo, cerrojo, dispatcher, cfg.SupervisorEmail)
	corteSvc := service.NewCorteService(corteRepo, turnoRepo, ventaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, turnoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	turnosH := handler.NewTurnosHandler(turnoSvc)
	cortesH := handler.NewCortesHandler(corteSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		caja := middleware.RequireRole("cajero", "supervisor", "administrador")
		supervision := middleware.RequireRole("supervisor", "administrador")

		turnos := v1.Group("/turnos")
		{
			turnos.POST("/abrir", caja, turnosH.Abrir)
			turnos.GET("/actual", caja, turnosH.Actual)
			turnos.POST("/:id/cerrar", caja, turnosH.Cerrar)
			turnos.GET("", supervision, turnosH.Listar)

			turnos.POST("/:id/cortes/x", caja, cortesH.CrearX)
			turnos.POST("/:id/cortes/z", caja, cortesH.CrearZ)
			turnos.GET("/:id/cortes", caja, cortesH.Listar)
			turnos.POST("/:id/cortes/:corte_id/imprimir", caja, cortesH.MarcarImpreso)
			turnos.GET("/:id/resumen", supervision, cortesH.Resumen)
		}

		v1.POST("/ventas", caja, ventasH.Registrar)
		v1.GET("/ventas", supervision, ventasH.Listar)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

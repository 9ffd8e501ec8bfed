package router

import (
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/config"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/handler"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/infra"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/middleware"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage *infra.FotoStorage) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(600, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	dispositivoRepo := repository.NewDispositivoRepository(db)
	reparacionRepo := repository.NewReparacionRepository(db)
	componenteRepo := repository.NewComponenteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	dispositivoSvc := service.NewDispositivoService(dispositivoRepo, usuarioRepo, dispatcher)
	reparacionSvc := service.NewReparacionService(reparacionRepo, dispositivoRepo, componenteRepo, dispatcher)
	componenteSvc := service.NewComponenteService(componenteRepo)
	reporteSvc := service.NewReporteService(dispositivoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	dispositivosH := handler.NewDispositivosHandler(dispositivoSvc, reparacionSvc, storage)
	reparacionesH := handler.NewReparacionesHandler(reparacionSvc, storage)
	componentesH := handler.NewComponentesHandler(componenteSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	seguimientoH := handler.NewSeguimientoHandler(dispositivoRepo, rdb, cfg.Domain)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public tracking — no auth required, read only
	r.POST("/v1/seguimiento", seguimientoH.Consultar)
	r.GET("/v1/seguimiento/:codigo", seguimientoH.Estado)
	r.GET("/v1/seguimiento/:codigo/ticket", seguimientoH.Ticket)
	r.GET("/v1/seguimiento/:codigo/ticket.pdf", seguimientoH.TicketPDF)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		todos := middleware.RequireRole(model.RolAdmin, model.RolAdministrativo, model.RolVendedor, model.RolTecnico)

		// Dispositivos — alta por mostrador, lista priorizada para todos
		v1.POST("/dispositivos", middleware.RequireRole(model.RolAdmin, model.RolVendedor), dispositivosH.Crear)
		v1.GET("/dispositivos", todos, dispositivosH.Listar)
		v1.GET("/dispositivos/:id", todos, dispositivosH.ObtenerPorID)
		v1.PUT("/dispositivos/:id/tecnico", middleware.RequireRole(model.RolAdmin, model.RolAdministrativo), dispositivosH.AsignarTecnico)
		v1.PUT("/dispositivos/:id/estado", middleware.RequireRole(model.RolAdmin, model.RolAdministrativo, model.RolTecnico), dispositivosH.ActualizarEstado)
		v1.PUT("/dispositivos/:id/entrega", middleware.RequireRole(model.RolAdmin, model.RolVendedor), dispositivosH.MarcarEntregado)
		v1.PUT("/dispositivos/:id/revertir", middleware.RequireRole(model.RolAdmin), dispositivosH.Revertir)
		v1.DELETE("/dispositivos/:id", middleware.RequireRole(model.RolAdmin), dispositivosH.Eliminar)
		v1.POST("/dispositivos/:id/fotos", todos, dispositivosH.SubirFotos)

		// Bitácora de reparaciones
		v1.POST("/dispositivos/:id/reparaciones", middleware.RequireRole(model.RolAdmin, model.RolAdministrativo, model.RolTecnico), reparacionesH.Agregar)
		v1.POST("/reparaciones/:id/componentes", middleware.RequireRole(model.RolAdmin, model.RolTecnico), reparacionesH.ConsumirComponente)
		v1.PUT("/reparaciones/:id/costo", middleware.RequireRole(model.RolAdmin), reparacionesH.EditarCosto)
		v1.PUT("/reparaciones/:id/precio", middleware.RequireRole(model.RolAdmin), reparacionesH.EditarPrecio)
		v1.POST("/reparaciones/:id/fotos", middleware.RequireRole(model.RolAdmin, model.RolTecnico), reparacionesH.SubirFoto)

		// Inventario de componentes
		v1.GET("/componentes", todos, componentesH.Listar)
		v1.GET("/componentes/disponibles", todos, componentesH.Disponibles)
		v1.POST("/componentes", middleware.RequireRole(model.RolAdmin, model.RolAdministrativo), componentesH.Crear)

		// Reportes
		v1.GET("/reportes/ingresos", middleware.RequireRole(model.RolAdmin, model.RolAdministrativo), reportesH.Ingresos)

		// Usuarios — admin only; técnicos listables para el selector de asignación
		v1.GET("/usuarios/tecnicos", middleware.RequireRole(model.RolAdmin, model.RolAdministrativo), usuariosH.ListarTecnicos)
		usuarios := v1.Group("/usuarios", middleware.RequireRole(model.RolAdmin))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id/password", usuariosH.CambiarPassword)
			usuarios.DELETE("/:id", usuariosH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

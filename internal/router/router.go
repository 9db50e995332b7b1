package router

import (
	"time"

	"eskimo/internal/config"
	"eskimo/internal/handler"
	"eskimo/internal/infra"
	"eskimo/internal/middleware"
	"eskimo/internal/repository"
	"eskimo/internal/service"
	"eskimo/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.SecureHeaders(cfg.IsProduction()))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	asignacionRepo := repository.NewAsignacionRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	suscripcionRepo := repository.NewSuscripcionRepository(db)
	negocioRepo := repository.NewNegocioRepository(db)

	// Worker dispatcher; injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	billingSvc := service.NewBillingService(suscripcionRepo, rdb, cfg.BillingSecret)
	negocioSvc := service.NewNegocioService(negocioRepo, cfg.BusinessName)
	productoSvc := service.NewProductoService(productoRepo, movimientoStockRepo)
	empleadoSvc := service.NewEmpleadoService(empleadoRepo)
	asignacionSvc := service.NewAsignacionService(asignacionRepo, empleadoRepo, productoRepo, ventaRepo, movimientoStockRepo)
	compraSvc := service.NewCompraService(compraRepo, productoRepo, movimientoStockRepo)
	inventarioSvc := service.NewInventarioService(asignacionRepo, ventaRepo, empleadoRepo, movimientoStockRepo)
	ventaSvc := service.NewVentaService(ventaRepo, asignacionRepo, productoRepo, empleadoRepo)
	reporteSvc := service.NewReporteService(ventaRepo, negocioRepo, dispatcher, cfg.BusinessName)
	carritoSvc := service.NewCarritoService(rdb, empleadoRepo, productoRepo, inventarioSvc, ventaSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	billingH := handler.NewBillingHandler(billingSvc)
	negocioH := handler.NewNegocioHandler(negocioSvc)
	productosH := handler.NewProductosHandler(productoSvc, inventarioSvc, reporteSvc)
	empleadosH := handler.NewEmpleadosHandler(empleadoSvc)
	asignacionesH := handler.NewAsignacionesHandler(asignacionSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	api := r.Group("/api")

	// Auth and billing stay reachable with an expired subscription so the
	// client can show the activation screen.
	api.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	api.POST("/logout", authH.Logout)
	billing := api.Group("/billings")
	{
		billing.GET("/check", billingH.Check)
		billing.POST("", middleware.LoginRateLimiter(), billingH.Activar)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, cfg.SessionCookieName)
	v1 := api.Group("", jwtMW, middleware.RequireSuscripcion(billingSvc))
	{
		prods := v1.Group("/products")
		{
			prods.GET("", productosH.Listar)
			prods.POST("", productosH.Crear)
			prods.GET("/reporte", productosH.Ranking)
			prods.GET("/:id", productosH.InventarioEmpleado)
			prods.PUT("/:id", productosH.Actualizar)
		}

		emps := v1.Group("/empleados")
		{
			emps.GET("", empleadosH.Listar)
			emps.POST("", empleadosH.Crear)
			emps.PUT("/:id", empleadosH.Actualizar)
			emps.DELETE("/:id", empleadosH.Eliminar)
		}

		asig := v1.Group("/inventarioempleado")
		{
			asig.GET("", asignacionesH.Listar)
			asig.POST("", asignacionesH.Crear)
			asig.DELETE("/:id", asignacionesH.Eliminar)
		}

		compras := v1.Group("/compras")
		{
			compras.GET("", comprasH.Listar)
			compras.POST("", comprasH.ListarPorBody)
			compras.POST("/create", comprasH.Crear)
			compras.GET("/resumen", comprasH.Resumen)
			compras.DELETE("/:id", comprasH.Eliminar)
		}

		v1.GET("/inventario/movimientos", inventarioH.ListarMovimientos)

		cart := v1.Group("/carrito")
		{
			cart.POST("", carritoH.Abrir)
			cart.GET("/:id", carritoH.Obtener)
			cart.DELETE("/:id", carritoH.Descartar)
			cart.PUT("/:id/empleado", carritoH.CambiarEmpleado)
			cart.POST("/:id/items", carritoH.AgregarItem)
			cart.DELETE("/:id/items/:itemId", carritoH.QuitarItem)
			cart.POST("/:id/checkout", carritoH.Checkout)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.Registrar)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/resumen", ventasH.Resumen)
			ventas.GET("/reporte", ventasH.Ranking)
			ventas.GET("/reporte/export", ventasH.Exportar)
			ventas.POST("/reporte/enviar", ventasH.Enviar)
			ventas.GET("/:id", ventasH.PorEmpleado)
		}

		v1.GET("/negocio", negocioH.Obtener)
		v1.PUT("/negocio", middleware.RequireRole("admin"), negocioH.Actualizar)

		usuarios := v1.Group("/users", middleware.RequireRole("admin"))
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Crear)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI; only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

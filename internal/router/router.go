package router

import (
	"time"

	"hostalpos/internal/config"
	"hostalpos/internal/handler"
	"hostalpos/internal/middleware"
	"hostalpos/internal/model"
	"hostalpos/internal/pdf"
	"hostalpos/internal/repository"
	"hostalpos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ubicacionRepo := repository.NewUbicacionRepository(db)
	stockRepo := repository.NewStockRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	alojamientoRepo := repository.NewAlojamientoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	recetaSvc := service.NewRecetaService(recetaRepo, productoRepo, stockRepo, ubicacionRepo)
	productoSvc := service.NewProductoService(productoRepo, recetaSvc)
	ubicacionSvc := service.NewUbicacionService(ubicacionRepo, stockRepo)
	inventarioSvc := service.NewInventarioService(stockRepo, productoRepo, ubicacionRepo)
	cajaSvc := service.NewCajaService(cajaRepo, stockRepo, ubicacionRepo, productoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, ubicacionRepo, cajaRepo, inventarioSvc, cajaSvc)
	alojamientoSvc := service.NewAlojamientoService(alojamientoRepo, cajaRepo, cajaSvc)

	tickets := pdf.NewTicketRenderer(cfg.NombreNegocio, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc, rdb)
	inventarioH := handler.NewInventarioHandler(inventarioSvc, ubicacionSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, tickets)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	alojamientoH := handler.NewAlojamientoHandler(alojamientoSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoSvc, rdb, time.Duration(cfg.PrecioCacheTTLSeconds)*time.Second)
	healthH := handler.NewHealthHandler(db, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/api/precio/:barcode", consultaH.GetPrecioPorBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.RolAdmin, model.RolVendedor)
	admin := middleware.RequireRole(model.RolAdmin)

	api := r.Group("/api", jwtMW)
	{
		// Catalog — everyone reads, only ADMIN writes
		api.GET("/productos", todos, productosH.Listar)
		api.GET("/productos/:id", todos, productosH.Obtener)
		prods := api.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		api.GET("/ubicaciones", todos, inventarioH.ListarUbicaciones)
		ubic := api.Group("/ubicaciones", admin)
		{
			ubic.POST("", inventarioH.CrearUbicacion)
			ubic.PUT("/:id", inventarioH.ActualizarUbicacion)
			ubic.DELETE("/:id", inventarioH.DesactivarUbicacion)
		}

		// Inventory — stock queries for everyone, mutations for ADMIN
		api.GET("/inventario/stock", todos, inventarioH.ConsultarStock)
		api.GET("/inventario/movimientos", todos, inventarioH.ListarMovimientos)
		inv := api.Group("/inventario", admin)
		{
			inv.POST("/ingresos", inventarioH.RegistrarIngreso)
			inv.POST("/ajustes", inventarioH.RegistrarAjuste)
			inv.POST("/traspasos", inventarioH.RegistrarTraspaso)
			inv.POST("/conversiones", inventarioH.RegistrarConversion)
			inv.POST("/documentos", inventarioH.CrearDocumento)
			inv.GET("/documentos", inventarioH.ListarDocumentos)
			inv.GET("/documentos/:id", inventarioH.ObtenerDocumento)
			inv.POST("/documentos/:id/confirmar", inventarioH.ConfirmarDocumento)
			inv.POST("/documentos/:id/anular", inventarioH.AnularDocumento)
		}

		caja := api.Group("/caja", todos)
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.GET("/actual", cajaH.Actual)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/historiales", cajaH.Historiales)
			caja.GET("/historiales/:id/snapshot", cajaH.Snapshot)
		}

		ventas := api.Group("/ventas", todos)
		{
			ventas.POST("", ventasH.Crear)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Obtener)
			ventas.DELETE("/:id", ventasH.Eliminar)
			ventas.POST("/:id/items", ventasH.AgregarItem)
			ventas.PUT("/:id/items/:itemId", ventasH.ActualizarItem)
			ventas.DELETE("/:id/items/:itemId", ventasH.EliminarItem)
			ventas.POST("/:id/confirmar", ventasH.Confirmar)
			ventas.GET("/:id/ticket", ventasH.Ticket)
		}

		// Recipes and insumo groups — ADMIN manages, everyone can read
		// production possibilities (the kitchen screen).
		api.GET("/recetas/posibles-masivo", todos, recetasH.PosiblesMasivo)
		api.GET("/comidas/:comidaId/costos", todos, recetasH.Costos)
		rec := api.Group("", admin)
		{
			rec.POST("/insumo-grupos", recetasH.CrearGrupo)
			rec.GET("/insumo-grupos", recetasH.ListarGrupos)
			rec.GET("/insumo-grupos/:id", recetasH.ObtenerGrupo)
			rec.PUT("/insumo-grupos/:id", recetasH.ActualizarGrupo)
			rec.POST("/insumo-grupos/:id/items", recetasH.AgregarGrupoItem)
			rec.PUT("/insumo-grupos/:id/items/:itemId", recetasH.ActualizarGrupoItem)
			rec.DELETE("/insumo-grupos/:id/items/:itemId", recetasH.EliminarGrupoItem)
			rec.PUT("/comidas/:comidaId/receta", recetasH.DefinirReceta)
		}

		// Hostel — guests and sales available to every role, layout is ADMIN
		aloj := api.Group("/alojamiento")
		{
			aloj.GET("/pisos", todos, alojamientoH.ListarPisos)
			aloj.POST("/pisos", admin, alojamientoH.CrearPiso)

			aloj.GET("/habitaciones", todos, alojamientoH.ListarHabitaciones)
			aloj.GET("/habitaciones/:id", todos, alojamientoH.ObtenerHabitacion)
			aloj.POST("/habitaciones", admin, alojamientoH.CrearHabitacion)
			aloj.PUT("/habitaciones/:id", admin, alojamientoH.ActualizarHabitacion)
			aloj.DELETE("/habitaciones/:id", admin, alojamientoH.DesactivarHabitacion)
			aloj.POST("/habitaciones/:id/camas", admin, alojamientoH.CrearCama)
			aloj.DELETE("/habitaciones/:id/camas/:camaId", admin, alojamientoH.EliminarCama)
			aloj.GET("/habitaciones/:id/inventario", todos, alojamientoH.ListarInventarioHabitacion)
			aloj.POST("/habitaciones/:id/inventario", admin, alojamientoH.AgregarInventarioHabitacion)
			aloj.DELETE("/habitaciones/:id/inventario/:itemId", admin, alojamientoH.EliminarInventarioHabitacion)

			aloj.GET("/comodidades", todos, alojamientoH.ListarComodidades)
			aloj.POST("/comodidades", admin, alojamientoH.CrearComodidad)

			aloj.GET("/huespedes", todos, alojamientoH.ListarHuespedes)
			aloj.POST("/huespedes", todos, alojamientoH.CrearHuesped)
			aloj.PUT("/huespedes/:id", todos, alojamientoH.ActualizarHuesped)

			aloj.GET("/asignaciones", todos, alojamientoH.ListarAsignaciones)
			aloj.POST("/asignaciones", todos, alojamientoH.AsignarCama)
			aloj.POST("/asignaciones/:id/liberar", todos, alojamientoH.LiberarCama)

			aloj.GET("/reservas", todos, alojamientoH.ListarReservas)
			aloj.POST("/reservas", todos, alojamientoH.CrearReserva)
			aloj.POST("/reservas/:id/confirmar", todos, alojamientoH.ConfirmarReserva)
			aloj.POST("/reservas/:id/cancelar", todos, alojamientoH.CancelarReserva)

			aloj.GET("/ventas", todos, alojamientoH.ListarVentas)
			aloj.POST("/ventas", todos, alojamientoH.RegistrarVenta)
		}

		usuarios := api.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

package router

import (
	"time"

	"github.com/ybatistazileno-stack/controle-vendas/internal/config"
	"github.com/ybatistazileno-stack/controle-vendas/internal/handler"
	"github.com/ybatistazileno-stack/controle-vendas/internal/infra"
	"github.com/ybatistazileno-stack/controle-vendas/internal/middleware"
	"github.com/ybatistazileno-stack/controle-vendas/internal/repository"
	"github.com/ybatistazileno-stack/controle-vendas/internal/service"
	"github.com/ybatistazileno-stack/controle-vendas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
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
	vendaRepo := repository.NewVendaRepository(db)
	prefRepo := repository.NewPreferenciaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	metricasSvc := service.NewMetricasService(vendaRepo, prefRepo, rdb)
	vendaSvc := service.NewVendaService(vendaRepo, prefRepo, metricasSvc)
	backupSvc := service.NewBackupService(vendaRepo, metricasSvc)
	prefSvc := service.NewPreferenciaService(prefRepo, metricasSvc)

	// Worker dispatcher — injected into handlers that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	metricasH := handler.NewMetricasHandler(metricasSvc)
	backupH := handler.NewBackupHandler(backupSvc)
	prefH := handler.NewPreferenciasHandler(prefSvc)
	agendaH := handler.NewAgendaHandler(vendaSvc)
	relatoriosH := handler.NewRelatoriosHandler(dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW, middleware.RequireRole("admin"))
	{
		v1.POST("/vendas", vendasH.Criar)
		v1.GET("/vendas", vendasH.Listar)
		v1.GET("/vendas/:id", vendasH.BuscarPorID)
		v1.PUT("/vendas/:id", vendasH.Atualizar)
		v1.DELETE("/vendas/:id", vendasH.Remover)
		v1.POST("/vendas/:id/receber-restante", vendasH.ReceberRestante)
		v1.POST("/vendas/:id/entregar", vendasH.MarcarEntregue)
		v1.POST("/vendas/:id/cancelar", vendasH.Cancelar)
		v1.GET("/vendas/:id/agenda.ics", agendaH.BaixarICS)

		v1.GET("/metricas", metricasH.Obter)

		v1.GET("/backup", backupH.Exportar)
		v1.POST("/backup/importar", backupH.Importar)

		v1.GET("/preferencias/mes-ativo", prefH.MesAtivo)
		v1.PUT("/preferencias/mes-ativo", prefH.DefinirMesAtivo)
		v1.GET("/preferencias/meta/:mes", prefH.Meta)
		v1.PUT("/preferencias/meta/:mes", prefH.DefinirMeta)

		v1.POST("/relatorios/mensal", relatoriosH.SolicitarMensal)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

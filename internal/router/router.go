package router

import (
	"time"

	"clinicaixa/internal/config"
	"clinicaixa/internal/handler"
	"clinicaixa/internal/middleware"
	"clinicaixa/internal/repository"
	"clinicaixa/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, loc *time.Location) *gin.Engine {
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
	profissionalRepo := repository.NewProfissionalRepository(db)
	especialidadeRepo := repository.NewEspecialidadeRepository(db)
	procedimentoRepo := repository.NewProcedimentoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	recebimentoRepo := repository.NewRecebimentoRepository(db)
	saidaRepo := repository.NewSaidaRepository(db)
	relatorioRepo := repository.NewRelatorioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	cadastroSvc := service.NewCadastroService(profissionalRepo, especialidadeRepo)
	procedimentoSvc := service.NewProcedimentoService(procedimentoRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, func() time.Time { return time.Now().In(loc) })
	recebimentoSvc := service.NewRecebimentoService(recebimentoRepo, caixaRepo, procedimentoRepo)
	saidaSvc := service.NewSaidaService(saidaRepo, caixaRepo)
	relatorioSvc := service.NewRelatorioService(relatorioRepo, caixaRepo, rdb, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	cadastrosH := handler.NewCadastrosHandler(cadastroSvc)
	procedimentosH := handler.NewProcedimentosHandler(procedimentoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	recebimentosH := handler.NewRecebimentosHandler(recebimentoSvc)
	saidasH := handler.NewSaidasHandler(saidaSvc)
	relatorioH := handler.NewRelatorioHandler(relatorioSvc, loc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		usuarios := v1.Group("/usuarios")
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Criar)
		}

		profissionais := v1.Group("/profissionais")
		{
			profissionais.GET("", cadastrosH.ListarProfissionais)
			profissionais.POST("", cadastrosH.CriarProfissional)
			profissionais.PUT("/:id", cadastrosH.AtualizarProfissional)
			profissionais.DELETE("/:id", cadastrosH.ExcluirProfissional)
		}

		especialidades := v1.Group("/especialidades")
		{
			especialidades.GET("", cadastrosH.ListarEspecialidades)
			especialidades.POST("", cadastrosH.CriarEspecialidade)
			especialidades.PUT("/:id", cadastrosH.AtualizarEspecialidade)
			especialidades.DELETE("/:id", cadastrosH.ExcluirEspecialidade)
		}

		procedimentos := v1.Group("/procedimentos")
		{
			procedimentos.GET("", procedimentosH.Listar)
			procedimentos.PUT("", procedimentosH.Upsert)
			procedimentos.DELETE("/:id", procedimentosH.Excluir)
		}

		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", caixaH.Abrir)
			caixa.POST("/encerrar", caixaH.Encerrar)
			caixa.GET("/dia", caixaH.GetByDia)
			caixa.GET("", caixaH.Listar)
		}

		recebimentos := v1.Group("/recebimentos")
		{
			recebimentos.POST("", recebimentosH.Adicionar)
			recebimentos.PUT("/:id", recebimentosH.Atualizar)
			recebimentos.DELETE("/:id", recebimentosH.Excluir)
			recebimentos.GET("", recebimentosH.ListarPorCaixa)
		}

		saidas := v1.Group("/saidas")
		{
			saidas.POST("", saidasH.Adicionar)
			saidas.GET("", saidasH.ListarPorCaixa)
		}

		relatorio := v1.Group("/relatorio")
		{
			relatorio.GET("/recebimentos", relatorioH.Recebimentos)
			relatorio.GET("/recebimentos/export", relatorioH.ExportCSV)
			relatorio.GET("/totais", relatorioH.Totais)
		}

		v1.GET("/dashboard/kpis", relatorioH.KPIs)
		v1.GET("/fechamento/dia", relatorioH.Fechamento)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

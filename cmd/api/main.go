package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/bloodstock/blood-stock-service/docs"
	"github.com/bloodstock/blood-stock-service/internal/application/auth"
	"github.com/bloodstock/blood-stock-service/internal/application/report"
	"github.com/bloodstock/blood-stock-service/internal/application/stock"
	"github.com/bloodstock/blood-stock-service/internal/application/usecase"
	infrapdf "github.com/bloodstock/blood-stock-service/internal/infrastructure/pdf"
	"github.com/bloodstock/blood-stock-service/internal/infrastructure/postgres"
	"github.com/bloodstock/blood-stock-service/internal/infrastructure/ratelimit"
	"github.com/bloodstock/blood-stock-service/internal/infrastructure/system"
	httpRouter "github.com/bloodstock/blood-stock-service/internal/interfaces/http"
	"github.com/bloodstock/blood-stock-service/pkg/config"
	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

// @title        Blood Stock Service API
// @version      1.1.0
// @description  API para gestión de stock de sangre por empresa y tipo sanguíneo.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ids := system.NewUUIDGenerator()
	clock := system.NewSystemClock()

	adjustUC := stock.NewAdjustStockUseCase(txRunner, ids, clock, log)
	queryUC := stock.NewQueryStockUseCase(stockRepo, movementRepo)
	registerUC := stock.NewRegisterStockUseCase(stockRepo, companyRepo, ids, clock)
	companyUC := usecase.NewCompanyUseCase(companyRepo, ids, clock)
	reportUC := report.NewStockReportUseCase(stockRepo, companyRepo, infrapdf.NewMarotoReportGenerator(), clock)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, ids, clock, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Control de admisión: contador compartido en Redis si está configurado,
	// si no contador local (modo una sola instancia).
	limiterCfg := ratelimit.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window(),
	}
	var limiter ratelimit.Backend
	if cfg.Redis.Enabled() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("REDIS_URL inválida")
		}
		limiter = ratelimit.NewRedisBackend(redis.NewClient(opts), limiterCfg, log)
		log.Info().Msg("rate limiter: backend Redis (modo distribuido)")
	} else {
		limiter = ratelimit.NewLocalBackend(limiterCfg)
		log.Warn().Msg("rate limiter: backend en memoria (una sola instancia)")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.TraceMiddleware())
	app.Use(httpRouter.RateLimitMiddleware(limiter, log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Blood Stock Service API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Adjuster:      adjustUC,
		StockReader:   queryUC,
		RegisterStock: registerUC,
		StockReport:   reportUC,
		CompanyUC:     companyUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

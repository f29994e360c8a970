package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bloodstock/blood-stock-service/internal/application/auth"
	"github.com/bloodstock/blood-stock-service/internal/application/report"
	"github.com/bloodstock/blood-stock-service/internal/application/stock"
	"github.com/bloodstock/blood-stock-service/internal/application/usecase"
	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Adjuster      stock.Adjuster
	StockReader   stock.StockReader
	RegisterStock *stock.RegisterStockUseCase
	StockReport   *report.StockReportUseCase
	CompanyUC     *usecase.CompanyUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Stocks: lecturas públicas; creación, ajuste y reporte con Bearer Token
	stockHandler := NewStockHandler(deps.Adjuster, deps.StockReader, deps.RegisterStock, deps.StockReport, deps.Log)
	stocks := api.Group("/stocks")
	stocks.Get("/", stockHandler.List)
	stocks.Get("/report", AuthMiddleware(deps.JWTSecret), stockHandler.Report)
	stocks.Get("/:stockId", stockHandler.GetByID)
	stocks.Get("/:stockId/movements", stockHandler.Movements)
	stocks.Post("/", AuthMiddleware(deps.JWTSecret), stockHandler.Create)
	stocks.Patch("/:stockId/adjust", AuthMiddleware(deps.JWTSecret), stockHandler.Adjust)
}

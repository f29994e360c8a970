package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bloodstock/blood-stock-service/internal/application/dto"
	"github.com/bloodstock/blood-stock-service/internal/application/report"
	"github.com/bloodstock/blood-stock-service/internal/application/stock"
	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

// StockHandler maneja las peticiones HTTP de stock: consultas, creación de
// registros, ajustes y reporte.
type StockHandler struct {
	adjuster stock.Adjuster
	reader   stock.StockReader
	register *stock.RegisterStockUseCase
	reportUC *report.StockReportUseCase
	log      *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(
	adjuster stock.Adjuster,
	reader stock.StockReader,
	register *stock.RegisterStockUseCase,
	reportUC *report.StockReportUseCase,
	log *logger.Logger,
) *StockHandler {
	return &StockHandler{adjuster: adjuster, reader: reader, register: register, reportUC: reportUC, log: log}
}

// List godoc
// @Summary      Listar registros de stock
// @Tags         stocks
// @Produce      json
// @Param        companyId  query  string  false  "Filtrar por empresa (UUID)"
// @Param        bloodType  query  string  false  "Filtrar por tipo sanguíneo"  Enums(O+, O-, A+, A-, B+, B-, AB+, AB-)
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        limit      query  int     false  "Items por página (1-100)"
// @Success      200  {object}  dto.StockListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 || limit < 1 {
		return writeError(c, fiber.StatusBadRequest, CodeValidation,
			"page debe ser >= 1 y limit entre 1 y 100", nil)
	}

	result, err := h.reader.ListStocks(c.Context(), stock.ListStocksQuery{
		CompanyID: c.Query("companyId"),
		BloodType: c.Query("bloodType"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return mapDomainError(c, err)
	}

	items := make([]dto.StockItemDTO, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, toStockItemDTO(s))
	}
	return c.JSON(dto.StockListResponse{
		Items: items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// GetByID godoc
// @Summary      Consultar un registro de stock
// @Tags         stocks
// @Produce      json
// @Param        stockId  path  string  true  "ID del registro (UUID)"
// @Success      200  {object}  dto.StockItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/{stockId} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.reader.GetStockByID(c.Context(), c.Params("stockId"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toStockItemDTO(view))
}

// Create godoc
// @Summary      Crear un registro de stock (cantidad inicial cero)
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "companyId, bloodType"
// @Success      201  {object}  dto.StockItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, CodeValidation, "cuerpo inválido", nil)
	}
	view, err := h.register.RegisterStock(c.Context(), in.CompanyID, in.BloodType)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockItemDTO(view))
}

// Adjust godoc
// @Summary      Ajustar la cantidad de un registro de stock
// @Description  Aplica un movimiento con signo (positivo entrada, negativo
// @Description  salida) de forma atómica, dejando un movimiento de auditoría.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        stockId  path  string                  true  "ID del registro (UUID)"
// @Param        body     body  dto.AdjustStockRequest  true  "movement (≠0), actionBy, notes"
// @Success      200  {object}  dto.AdjustStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/{stockId}/adjust [patch]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, CodeValidation, "cuerpo inválido", nil)
	}
	if in.Movement == 0 {
		return writeError(c, fiber.StatusBadRequest, CodeValidation,
			"movement debe ser un entero distinto de cero", fiber.Map{"field": "movement"})
	}
	actionBy := in.ActionBy
	if actionBy == "" {
		actionBy = GetUserID(c)
	}
	if actionBy == "" || len(actionBy) > 255 {
		return writeError(c, fiber.StatusBadRequest, CodeValidation,
			"actionBy es obligatorio y de máximo 255 caracteres", fiber.Map{"field": "actionBy"})
	}
	if len(in.Notes) > 1000 {
		return writeError(c, fiber.StatusBadRequest, CodeValidation,
			"notes admite máximo 1000 caracteres", fiber.Map{"field": "notes"})
	}

	result, err := h.adjuster.Adjust(c.Context(), stock.AdjustStockInput{
		StockID:  c.Params("stockId"),
		Movement: in.Movement,
		ActionBy: actionBy,
		Notes:    in.Notes,
	})
	if err != nil {
		h.log.Error().
			Err(err).
			Str("trace_id", GetTraceID(c)).
			Str("stock_id", c.Params("stockId")).
			Int("movement", in.Movement).
			Msg("ajuste de stock rechazado o fallido")
		return mapDomainError(c, err)
	}

	return c.JSON(dto.AdjustStockResponse{
		StockID:        result.StockID,
		CompanyID:      result.CompanyID,
		BloodType:      result.BloodType.String(),
		QuantityBefore: result.QuantityBefore,
		QuantityAfter:  result.QuantityAfter,
		Timestamp:      result.Timestamp,
	})
}

// Movements godoc
// @Summary      Historial de movimientos de un registro de stock
// @Tags         stocks
// @Produce      json
// @Param        stockId  path   string  true   "ID del registro (UUID)"
// @Param        limit    query  int     false  "Máximo de movimientos (1-200)"
// @Success      200  {object}  dto.StockMovementsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/{stockId}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	stockID := c.Params("stockId")
	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		return writeError(c, fiber.StatusBadRequest, CodeValidation,
			"limit debe estar entre 1 y 200", nil)
	}

	movements, err := h.reader.GetStockMovements(c.Context(), stockID, limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	items := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.StockMovementDTO{
			ID:             m.ID,
			StockID:        m.StockID,
			QuantityBefore: m.QuantityBefore,
			Movement:       m.Movement,
			QuantityAfter:  m.QuantityAfter,
			ActionBy:       m.ActionBy,
			Notes:          m.Notes,
			CreatedAt:      m.CreatedAt,
		})
	}
	return c.JSON(dto.StockMovementsResponse{StockID: stockID, Items: items, Limit: limit})
}

// Report godoc
// @Summary      Reporte PDF de existencias de una empresa
// @Tags         stocks
// @Security     Bearer
// @Produce      application/pdf
// @Param        companyId  query  string  true  "Empresa (UUID)"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.Generate(c.Context(), c.Query("companyId"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="existencias.pdf"`)
	return c.Send(pdfBytes)
}

func toStockItemDTO(s *stock.StockView) dto.StockItemDTO {
	return dto.StockItemDTO{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		BloodType: s.BloodType.String(),
		Quantity:  s.Quantity,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

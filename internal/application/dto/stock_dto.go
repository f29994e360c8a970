package dto

import "time"

// AdjustStockRequest body para PATCH /api/v1/stocks/:stockId/adjust.
// Movement es el delta con signo: positivo entrada, negativo salida.
type AdjustStockRequest struct {
	Movement int    `json:"movement" example:"-5"`
	ActionBy string `json:"actionBy" example:"dr.garcia"`
	Notes    string `json:"notes" example:"transfusión urgencias"`
}

// AdjustStockResponse snapshot antes/después de un ajuste aceptado.
type AdjustStockResponse struct {
	StockID        string    `json:"stockId"`
	CompanyID      string    `json:"companyId"`
	BloodType      string    `json:"bloodType"`
	QuantityBefore int       `json:"quantityBefore"`
	QuantityAfter  int       `json:"quantityAfter"`
	Timestamp      time.Time `json:"timestamp"`
}

// CreateStockRequest body para POST /api/v1/stocks. El registro nace con
// cantidad cero; las existencias iniciales entran como un ajuste.
type CreateStockRequest struct {
	CompanyID string `json:"companyId"`
	BloodType string `json:"bloodType" example:"O+"`
}

// StockItemDTO un registro de stock en respuestas.
type StockItemDTO struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	BloodType string    `json:"bloodType"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StockListResponse página de registros de stock.
type StockListResponse struct {
	Items []StockItemDTO `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// StockMovementDTO un movimiento en el historial de un stock.
type StockMovementDTO struct {
	ID             string    `json:"id"`
	StockID        string    `json:"stockId"`
	QuantityBefore int       `json:"quantityBefore"`
	Movement       int       `json:"movement"`
	QuantityAfter  int       `json:"quantityAfter"`
	ActionBy       string    `json:"actionBy"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StockMovementsResponse historial de movimientos, más recientes primero.
type StockMovementsResponse struct {
	StockID string             `json:"stockId"`
	Items   []StockMovementDTO `json:"items"`
	Limit   int                `json:"limit"`
}

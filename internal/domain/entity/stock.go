package entity

import "time"

// Stock registro de stock actual de un tipo sanguíneo en una empresa.
// Una fila por (company_id, blood_type). La cantidad solo se modifica a través
// del motor de ajustes (AdjustStockUseCase); nunca se elimina, puede llegar a cero.
type Stock struct {
	ID        string
	CompanyID string
	BloodType BloodType
	Quantity  Quantity
	CreatedAt time.Time
	UpdatedAt time.Time
}

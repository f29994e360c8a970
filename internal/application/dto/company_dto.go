package dto

import "time"

// CreateCompanyRequest body para POST /api/v1/companies.
type CreateCompanyRequest struct {
	Name string `json:"name"`
}

// CompanyResponse empresa en respuestas.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

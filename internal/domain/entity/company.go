package entity

import "time"

// Company empresa/hospital dueña de registros de stock.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

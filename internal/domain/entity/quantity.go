package entity

import "github.com/bloodstock/blood-stock-service/internal/domain"

// Quantity cantidad de bolsas en stock. Siempre >= 0: las operaciones
// aritméticas retornan error en vez de producir un valor negativo.
type Quantity int

// NewQuantity valida que el valor no sea negativo.
func NewQuantity(v int) (Quantity, error) {
	if v < 0 {
		return 0, domain.ErrNegativeQuantity
	}
	return Quantity(v), nil
}

// Apply suma un movimiento con signo. Retorna ErrNegativeQuantity si el
// resultado quedaría por debajo de cero.
func (q Quantity) Apply(movement int) (Quantity, error) {
	return NewQuantity(int(q) + movement)
}

// Add suma otra cantidad.
func (q Quantity) Add(other Quantity) Quantity {
	return q + other
}

// Subtract resta otra cantidad; error si el resultado es negativo.
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	return NewQuantity(int(q) - int(other))
}

// Int devuelve el valor entero.
func (q Quantity) Int() int { return int(q) }

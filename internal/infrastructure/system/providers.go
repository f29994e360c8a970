// Package system implementa los proveedores de identificadores y de hora.
// Son capacidades puras inyectadas por constructor; los tests las reemplazan
// por implementaciones deterministas.
package system

import (
	"time"

	"github.com/google/uuid"

	"github.com/bloodstock/blood-stock-service/internal/application/stock"
)

var (
	_ stock.IDGenerator = (*UUIDGenerator)(nil)
	_ stock.Clock       = (*SystemClock)(nil)
)

// UUIDGenerator genera UUIDs v4.
type UUIDGenerator struct{}

// NewUUIDGenerator construye el generador.
func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

// NewID devuelve un UUID nuevo.
func (g *UUIDGenerator) NewID() string { return uuid.New().String() }

// SystemClock hora del sistema en UTC.
type SystemClock struct{}

// NewSystemClock construye el reloj.
func NewSystemClock() *SystemClock { return &SystemClock{} }

// Now devuelve la hora actual en UTC.
func (c *SystemClock) Now() time.Time { return time.Now().UTC() }

// Package ratelimit implementa el control de admisión: un contador de
// ventana fija por cliente que protege al motor de ajustes de sobrecarga.
//
// Dos backends intercambiables: local (memoria del proceso, una sola
// instancia) y Redis (contador compartido entre instancias). El backend
// Redis degrada automáticamente a un contador local de respaldo cuando Redis
// no responde, reportando la degradación en los logs; el servicio nunca se
// cae ni queda abierto por una falla del backend compartido.
package ratelimit

import (
	"context"
	"time"
)

// Result resultado de consumir un cupo de la ventana.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration // > 0 solo cuando Allowed es false
}

// Backend contador de ventana fija por clave de cliente.
// La consistencia puede ser aproximada (eventual entre instancias): el rate
// limiting tolera sobrepasos breves, a diferencia del motor de ajustes.
type Backend interface {
	// Consume descuenta un cupo para la clave y retorna el estado de la
	// ventana. No bloquea más allá de la llamada al almacén subyacente.
	Consume(ctx context.Context, key string) (Result, error)
}

// Config parámetros de la ventana.
type Config struct {
	MaxRequests int
	Window      time.Duration
}

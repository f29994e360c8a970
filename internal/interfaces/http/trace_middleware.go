package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header y local key del identificador de traza. Cada respuesta (incluidos
// los errores) lo lleva para correlacionar con los logs del servidor.
const (
	TraceHeader  = "X-Trace-Id"
	localTraceID = "trace_id"
)

// TraceMiddleware propaga el X-Trace-Id entrante o genera uno nuevo.
func TraceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Locals(localTraceID, traceID)
		c.Set(TraceHeader, traceID)
		return c.Next()
	}
}

// GetTraceID devuelve el trace id de la petición actual.
func GetTraceID(c *fiber.Ctx) string {
	v, _ := c.Locals(localTraceID).(string)
	return v
}

package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bloodstock/blood-stock-service/internal/infrastructure/ratelimit"
	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

// Rutas exentas del control de admisión (documentación e introspección).
var rateLimitSkipPrefixes = []string{"/docs", "/api-docs", "/health"}

// RateLimitMiddleware aplica el control de admisión antes de la lógica de
// negocio. Toda respuesta lleva los headers x-ratelimit-*; un rechazo
// responde 429 con Retry-After apuntando al resto de la ventana.
func RateLimitMiddleware(backend ratelimit.Backend, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range rateLimitSkipPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		key := clientKey(c)
		res, err := backend.Consume(c.Context(), key)
		if err != nil {
			// Los backends degradan internamente; un error aquí es
			// inesperado y no debe tumbar la petición.
			log.Error().Err(err).Str("client", key).Msg("control de admisión falló")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retryAfter := int(res.RetryAfter.Round(time.Second) / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return writeError(c, fiber.StatusTooManyRequests, CodeRateLimitExceeded,
				"demasiadas peticiones, intente más tarde", fiber.Map{
					"retryAfterSeconds": retryAfter,
				})
		}
		return c.Next()
	}
}

// clientKey identifica al cliente: primer hop de X-Forwarded-For si viene de
// un proxy, si no la IP remota.
func clientKey(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return c.IP()
}

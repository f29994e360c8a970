package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

var _ Backend = (*RedisBackend)(nil)

// Prefijo de las claves del contador en Redis.
const keyPrefix = "blood-stock-rate-limit:"

// RedisBackend contador de ventana fija compartido entre todas las instancias
// del servicio (INCR + PEXPIRE). Si Redis no responde, degrada al contador
// local de respaldo y lo reporta una vez por caída, no por petición.
type RedisBackend struct {
	client    *redis.Client
	cfg       Config
	insurance *LocalBackend
	log       *logger.Logger
	degraded  atomic.Bool
}

// NewRedisBackend construye el backend compartido con su respaldo local.
func NewRedisBackend(client *redis.Client, cfg Config, log *logger.Logger) *RedisBackend {
	return &RedisBackend{
		client:    client,
		cfg:       cfg,
		insurance: NewLocalBackend(cfg),
		log:       log,
	}
}

// Consume descuenta un cupo en el contador compartido. Ante un error de Redis
// responde con el contador local: mejor un límite aproximado que un servicio
// caído o sin límite.
func (b *RedisBackend) Consume(ctx context.Context, key string) (Result, error) {
	redisKey := keyPrefix + key

	pipe := b.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return b.fallback(ctx, key, err)
	}

	count := int(incr.Val())
	remaining := ttl.Val()
	if remaining < 0 {
		// Clave recién creada (o sin expiración por una caída anterior):
		// fijar la ventana ahora.
		remaining = b.cfg.Window
		if err := b.client.PExpire(ctx, redisKey, remaining).Err(); err != nil {
			return b.fallback(ctx, key, err)
		}
	}
	b.recovered()

	now := time.Now()
	res := Result{
		Limit:   b.cfg.MaxRequests,
		ResetAt: now.Add(remaining),
	}
	if count <= b.cfg.MaxRequests {
		res.Allowed = true
		res.Remaining = b.cfg.MaxRequests - count
		return res, nil
	}
	res.RetryAfter = remaining
	return res, nil
}

func (b *RedisBackend) fallback(ctx context.Context, key string, cause error) (Result, error) {
	if b.degraded.CompareAndSwap(false, true) {
		b.log.Warn().
			Err(cause).
			Msg("rate limiter: Redis no disponible, degradando a contador local")
	}
	return b.insurance.Consume(ctx, key)
}

func (b *RedisBackend) recovered() {
	if b.degraded.CompareAndSwap(true, false) {
		b.log.Info().Msg("rate limiter: Redis disponible de nuevo, contador compartido activo")
	}
}

package ratelimit

import (
	"context"
	"sync"
	"time"
)

var _ Backend = (*LocalBackend)(nil)

// LocalBackend contador en memoria del proceso. Correcto solo con una
// instancia del servicio; es el backend por defecto cuando no hay Redis
// configurado, y el respaldo del backend Redis durante una caída.
type LocalBackend struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

// NewLocalBackend construye el backend local.
func NewLocalBackend(cfg Config) *LocalBackend {
	return &LocalBackend{
		cfg:     cfg,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Consume descuenta un cupo de la ventana de la clave. Nunca retorna error.
func (b *LocalBackend) Consume(_ context.Context, key string) (Result, error) {
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	w := b.windows[key]
	if w == nil || !now.Before(w.resetAt) {
		b.sweepLocked(now)
		w = &window{resetAt: now.Add(b.cfg.Window)}
		b.windows[key] = w
	}
	w.count++

	res := Result{
		Limit:   b.cfg.MaxRequests,
		ResetAt: w.resetAt,
	}
	if w.count <= b.cfg.MaxRequests {
		res.Allowed = true
		res.Remaining = b.cfg.MaxRequests - w.count
		return res, nil
	}
	res.RetryAfter = w.resetAt.Sub(now)
	return res, nil
}

// sweepLocked purga ventanas vencidas para que el mapa no crezca sin tope
// con claves de clientes que no vuelven.
func (b *LocalBackend) sweepLocked(now time.Time) {
	for key, w := range b.windows {
		if !now.Before(w.resetAt) {
			delete(b.windows, key)
		}
	}
}

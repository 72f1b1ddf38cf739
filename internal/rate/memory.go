package rate

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter: misma ventana fija que RedisLimiter, contadores en go-cache.
// Sólo sirve con una réplica.
type MemoryLimiter struct {
	Prefix string
	Max    int64
	Window time.Duration

	c   *gocache.Cache
	now func() time.Time
}

func NewMemoryLimiter(prefix string, max int, window time.Duration) *MemoryLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &MemoryLimiter{
		Prefix: prefix,
		Max:    int64(max),
		Window: window,
		c:      gocache.New(window, 2*window),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now().UTC()
	winStart := now.Truncate(l.Window)
	winEnd := winStart.Add(l.Window)
	k := windowKey(l.Prefix, key, winStart)
	ttl := winEnd.Sub(now)

	// Add falla si ya existe: en ese caso sólo incrementamos
	_ = l.c.Add(k, int64(0), ttl)
	hits, err := l.c.IncrementInt64(k, 1)
	if err != nil {
		// expiró entre Add e Increment
		l.c.Set(k, int64(1), ttl)
		hits = 1
	}

	res := newResult(hits, l.Max, ttl)
	if !res.Allowed {
		res.RetryAfter = ttl
	}
	return res, nil
}

package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/yakumwamba/lpg-delivery-access/internal/application/dto"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter límite por IP para los endpoints de login.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	metrics  *Metrics
}

// NewRateLimiter perMinute intentos por minuto con ráfaga burst. La limpieza corre en Run.
func NewRateLimiter(perMinute, burst int, m *Metrics) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		metrics:  m,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.limiters[ip]; ok {
		l.lastSeen = time.Now()
		return l.limiter
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = &ipLimiter{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

// Sweep borra limitadores sin uso desde hace más de idle.
func (rl *RateLimiter) Sweep(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, l := range rl.limiters {
		if time.Since(l.lastSeen) > idle {
			delete(rl.limiters, ip)
			removed++
		}
	}
	return removed
}

// Run barre periódicamente hasta que se cierre done.
func (rl *RateLimiter) Run(done <-chan struct{}) {
	ticker := time.NewTicker(3 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.Sweep(5 * time.Minute)
		}
	}
}

// Middleware 429 RATE_LIMITED con Retry-After cuando la IP agota su cupo.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.getLimiter(c.IP()).Allow() {
			return c.Next()
		}
		rl.metrics.rateLimited()
		retryAfter := max(int(1.0/float64(rl.rate)), 1)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code:    "RATE_LIMITED",
			Message: "demasiados intentos, espere antes de reintentar",
		})
	}
}

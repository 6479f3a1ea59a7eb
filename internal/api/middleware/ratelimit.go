package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jobpulse/pkg/models"

	"github.com/labstack/echo/v4"
)

// staleAfter is how long an idle client's limiter survives before the
// cleanup pass drops it.
const staleAfter = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client-IP sliding window on the wrapped routes.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	requests int
	window   time.Duration
}

// NewRateLimiter allows `requests` per `window` per client IP.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		requests: requests,
		window:   window,
	}
	go rl.cleanupLoop()
	return rl
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.limiterFor(c.RealIP())

			reservation := limiter.Reserve()
			if !reservation.OK() {
				return rl.reject(c, rl.window)
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				return rl.reject(c, delay)
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.requests)), rl.requests),
		}
		rl.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

func (rl *RateLimiter) reject(c echo.Context, wait time.Duration) error {
	retryAfter := int(math.Ceil(wait.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))

	return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests, slow down",
		RetryAfter: retryAfter,
		RequestID:  RequestID(c),
		Timestamp:  time.Now(),
	})
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-staleAfter)
		rl.mu.Lock()
		for ip, client := range rl.clients {
			if client.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

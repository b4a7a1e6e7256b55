package handler

import (
	"sync"
	"time"

	"drawguess-service/domain"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	Global      LimitConfig
	Participant LimitConfig
}

type LimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

func NewDefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Global:      LimitConfig{RequestsPerMinute: 6000, Burst: 200},
		Participant: LimitConfig{RequestsPerMinute: 120, Burst: 20},
	}
}

// RateLimiter caps HTTP calls globally and per authenticated participant.
type RateLimiter struct {
	config        RateLimitConfig
	globalLimiter *rate.Limiter
	participants  sync.Map
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	defaults := NewDefaultRateLimitConfig()
	if cfg.Global.RequestsPerMinute <= 0 {
		cfg.Global = defaults.Global
	}
	if cfg.Participant.RequestsPerMinute <= 0 {
		cfg.Participant = defaults.Participant
	}
	return &RateLimiter{
		config:        cfg,
		globalLimiter: newLimiter(cfg.Global),
	}
}

func newLimiter(cfg LimitConfig) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.Burst)
}

func (rl *RateLimiter) participantLimiter(id string) *rate.Limiter {
	limiter, _ := rl.participants.LoadOrStore(id, newLimiter(rl.config.Participant))
	return limiter.(*rate.Limiter)
}

// Middleware must run after AuthGuard so the participant is known.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.globalLimiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": domain.ErrRateLimited.Error(),
			})
		}

		if identity, ok := IdentityFrom(c); ok {
			if !rl.participantLimiter(identity.UserID).Allow() {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": domain.ErrRateLimited.Error(),
				})
			}
		}

		return c.Next()
	}
}

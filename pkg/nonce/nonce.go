// Package nonce mints and verifies the short-lived, action-scoped tokens
// that guard state-changing admin requests against replay and forgery.
package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const tokenLength = 16

// Option configures a Service.
type Option func(*Service)

// WithSecret pins the signing secret. Without it every Service instance
// generates its own, which invalidates outstanding tokens across restarts.
func WithSecret(secret string) Option {
	return func(s *Service) {
		if secret != "" {
			s.secret = []byte(secret)
		}
	}
}

// WithLifetime sets the token tick length. A token stays valid for the
// current and the previous tick, so the effective lifetime is up to twice
// this value.
func WithLifetime(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lifetime = d
		}
	}
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service derives deterministic tokens from a secret, an action scope, and
// a coarse time tick.
type Service struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// New constructs a Service with a 12 hour tick unless configured otherwise.
func New(options ...Option) *Service {
	s := &Service{
		lifetime: 12 * time.Hour,
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if len(s.secret) == 0 {
		s.secret = []byte(uuid.NewString())
	}
	return s
}

// Mint returns the token for an action scope in the current tick.
func (s *Service) Mint(action string) string {
	return s.tokenAt(action, s.tick(0))
}

// Verify reports whether a token matches the action scope in the current or
// previous tick. Comparison is constant-time.
func (s *Service) Verify(token, action string) bool {
	if token == "" {
		return false
	}
	for _, offset := range []int64{0, -1} {
		expected := s.tokenAt(action, s.tick(offset))
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1 {
			return true
		}
	}
	return false
}

func (s *Service) tick(offset int64) int64 {
	return s.now().UnixNano()/int64(s.lifetime) + offset
}

func (s *Service) tokenAt(action string, tick int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", action, tick)
	return hex.EncodeToString(mac.Sum(nil))[:tokenLength]
}

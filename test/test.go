// Package test provides integration testing infrastructure for admindash
package test

import (
	"context"
	"time"
)

// DefaultTestTimeout bounds the context of a suite
const DefaultTestTimeout = 30 * time.Second

// Option configures a Suite before its database and server start
type Option func(*Suite)

// WithTimeout replaces the suite's context with one bounded by timeout
func WithTimeout(timeout time.Duration) Option {
	return func(s *Suite) {
		s.cancelFunc()
		s.ctx, s.cancelFunc = context.WithTimeout(context.Background(), timeout)
	}
}

// WithJWTSecret enables bearer token authorization on the test server. The
// suite's APIClient is given an admin token.
func WithJWTSecret(secret string) Option {
	return func(s *Suite) {
		s.jwtSecret = secret
	}
}

// WithCleanupFunc registers fn to run when the suite is cleaned up
func WithCleanupFunc(fn func()) Option {
	return func(s *Suite) {
		s.addCleanup(fn)
	}
}

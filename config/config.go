// Package config holds the process configuration, parsed from flags and
// environment variables carrying the BOOKSTORE prefix.
package config

import "time"

type Config struct {
	API API
}

type API struct {
	URL     string        `conf:"default:http://localhost:8080"`
	Timeout time.Duration `conf:"default:10s"`

	// RetryAttempts is carried from the original deployment but not yet
	// honored by the client; every request is a single attempt.
	RetryAttempts int `conf:"default:3"`

	// TokenFile is resolved against the user's home directory when the
	// path is relative.
	TokenFile string `conf:"default:.bookstore/token"`
}

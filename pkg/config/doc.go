// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads an optional .env file,
// with github.com/caarlos0/env/v11, which maps variables onto struct fields
// through `env` and `envDefault` tags. Every config type is parsed at most
// once per process and the result is cached, so packages can call Load for
// the same struct without re-reading the environment.
//
// A config type with a Validate() error method is checked right after
// parsing. A failed validation is reported as ErrInvalidConfig.
package config

package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that check their own values
// after parsing.
type Validator interface {
	Validate() error
}

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	dotenvOnce sync.Once

	mu      sync.Mutex
	entries = make(map[reflect.Type]*entry)
)

// Load fills v from environment variables using `env` struct tags. A .env
// file in the working directory is read once, if present, without
// overriding variables that are already set.
//
// Each config type is parsed once per process; later calls for the same
// type copy the cached result, including a cached error.
//
//	type Config struct {
//		Languages []string `env:"I18N_LANGUAGES" envDefault:"en,ko"`
//		Default   string   `env:"I18N_DEFAULT" envDefault:"en"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	e := entryFor(reflect.TypeFor[T]())
	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		if val, ok := any(&cfg).(Validator); ok {
			if err := val.Validate(); err != nil {
				e.err = errors.Join(ErrInvalidConfig, err)
				return
			}
		}
		e.value = cfg
	})

	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func entryFor(t reflect.Type) *entry {
	mu.Lock()
	defer mu.Unlock()
	e, ok := entries[t]
	if !ok {
		e = &entry{}
		entries[t] = e
	}
	return e
}

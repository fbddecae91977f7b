package config_test

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localegate/pkg/config"
)

type defaultsConfig struct {
	Languages []string `env:"TEST_CFG_LANGUAGES" envDefault:"en,ko"`
	Default   string   `env:"TEST_CFG_DEFAULT" envDefault:"en"`
	Logging   bool     `env:"TEST_CFG_LOGGING" envDefault:"true"`
}

type overrideConfig struct {
	Languages []string `env:"TEST_CFG_OVERRIDE_LANGUAGES" envDefault:"en"`
	MaxAge    int      `env:"TEST_CFG_OVERRIDE_MAX_AGE" envDefault:"3600"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED" envDefault:"default"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED,required"`
}

type concurrentConfig struct {
	Value string `env:"TEST_CFG_CONCURRENT" envDefault:"shared"`
}

type validatedConfig struct {
	Default string `env:"TEST_CFG_VALIDATED_DEFAULT" envDefault:"fr"`
}

var errDefaultMissing = errors.New("default language is not supported")

func (c *validatedConfig) Validate() error {
	if c.Default != "en" {
		return errDefaultMissing
	}
	return nil
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_CFG_LANGUAGES")
	os.Unsetenv("TEST_CFG_DEFAULT")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, []string{"en", "ko"}, cfg.Languages)
	assert.Equal(t, "en", cfg.Default)
	assert.True(t, cfg.Logging)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_CFG_OVERRIDE_LANGUAGES", "en,ko,ja")
	t.Setenv("TEST_CFG_OVERRIDE_MAX_AGE", "60")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, []string{"en", "ko", "ja"}, cfg.Languages)
	assert.Equal(t, 60, cfg.MaxAge)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("TEST_CFG_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CFG_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "the environment is read once per type")
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_CFG_REQUIRED")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_Validate(t *testing.T) {
	var cfg validatedConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorIs(t, err, errDefaultMissing)
}

func TestLoad_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]concurrentConfig, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, config.Load(&results[i]))
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "shared", r.Value)
	}
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

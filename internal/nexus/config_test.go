package nexus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Host    string `env:"NEXUS_TEST_HOST"`
	Port    string `env:"NEXUS_TEST_PORT"`
	Retries int    `env:"NEXUS_TEST_RETRIES" validate:"gte=0"`
}

func TestLoader(t *testing.T) {
	t.Run("environment overrides zero values", func(t *testing.T) {
		t.Setenv("NEXUS_TEST_HOST", "db.internal")

		cfg := &testConfig{}
		err := NewLoader().Load(cfg)
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Host)
	})

	t.Run("defaults fill unset fields only", func(t *testing.T) {
		t.Setenv("NEXUS_TEST_HOST", "db.internal")

		cfg := &testConfig{}
		loader := NewLoader(WithDefaults(testConfig{Host: "localhost", Port: "5432", Retries: 3}))
		require.NoError(t, loader.Load(cfg))

		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, 3, cfg.Retries)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &testConfig{}
		err := NewLoader(WithFileName("does-not-exist.yaml")).Load(cfg)

		var cfgErr ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ErrCodeFileNotFound, cfgErr.Code)
	})
}

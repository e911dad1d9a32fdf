package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, "en", cfg.Pipeline.PrimaryLanguage)
	assert.True(t, cfg.Pipeline.IncludeVariants)
	assert.Equal(t, 2, cfg.Pipeline.DimensionTolerancePx)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 1, cfg.Pipeline.Workers)

	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "./images", cfg.Storage.Root)
	assert.Equal(t, "cards", cfg.Storage.Bucket)

	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PIPELINE_PRIMARY_LANGUAGE", "it")
	t.Setenv("PIPELINE_WORKERS", "4")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("STORAGE_BUCKET", "cards-prod")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, "it", cfg.Pipeline.PrimaryLanguage)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "cards-prod", cfg.Storage.Bucket)
	assert.Equal(t, "debug", cfg.Log.Level)
}

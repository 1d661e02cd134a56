package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultConfig(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, log.Logger)
}

func TestNew_FileOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "file"
	cfg.File.Filename = filepath.Join(t.TempDir(), "app.log")

	log, err := New(cfg)
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Sync())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"bad level", func(c *Config) { c.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Format = "xml" }, true},
		{"bad output", func(c *Config) { c.Output = "syslog" }, true},
		{"file output needs filename", func(c *Config) { c.Output = "file"; c.File.Filename = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNamedAndWith(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)

	named := log.Named("movies")
	assert.NotNil(t, named)
	assert.Equal(t, log.config, named.config)

	child := log.With()
	assert.NotNil(t, child)
}

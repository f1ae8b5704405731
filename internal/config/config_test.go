package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.True(t, cfg.S3.UseSSL)
	assert.False(t, cfg.Export.Upload)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opencam-export.yaml")
	content := `log_level: debug
export:
  dir: /tmp/tables
  upload: true
s3:
  endpoint: minio.local:9000
  bucket: exports
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := New()
	assert.NoError(t, cfg.Load(path, nil))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/tables", cfg.Export.Dir)
	assert.True(t, cfg.Export.Upload)
	assert.Equal(t, "minio.local:9000", cfg.S3.Endpoint)
	assert.Equal(t, "exports", cfg.S3.Bucket)
	// Untouched keys keep their defaults.
	assert.Equal(t, "us-east-1", cfg.S3.Region)
}

func TestLoadFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opencam-export.yaml")
	content := `log_level: info
s3:
  bucket: file-bucket
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "")
	flags.StringVar(&cfg.S3.Bucket, "bucket", cfg.S3.Bucket, "")
	assert.NoError(t, flags.Parse([]string{"--log-level", "debug"}))

	assert.NoError(t, cfg.Load(path, flags))

	// A flag set on the command line beats the file.
	assert.Equal(t, "debug", cfg.LogLevel)
	// A flag left at its default loses to the file.
	assert.Equal(t, "file-bucket", cfg.S3.Bucket)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	cfg := New()
	err := cfg.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

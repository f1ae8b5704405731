package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	LogLevel string
	Export   ExportConfig
	S3       S3Config
}

// ExportConfig controls where exported tables land and whether they are
// pushed to object storage afterwards.
type ExportConfig struct {
	Dir    string
	Upload bool
}

// S3Config represents S3 connection configuration
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "info",
		S3: S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// flagKeys maps configuration keys to the CLI flags that own them.
var flagKeys = map[string]string{
	"log_level":     "log-level",
	"export.dir":    "output-dir",
	"export.upload": "upload",
	"s3.endpoint":   "endpoint",
	"s3.region":     "region",
	"s3.bucket":     "bucket",
	"s3.access_key": "access-key",
	"s3.secret_key": "secret-key",
	"s3.use_ssl":    "use-ssl",
	"s3.prefix":     "prefix",
}

// Load merges an optional config file and OPENCAM_* environment variables
// into the configuration. Precedence is flag > environment > file >
// default: a flag set on the command line wins over everything, a flag
// left at its default only fills in when the file and environment are
// silent. A missing file is only an error when a path was named
// explicitly.
func (c *Config) Load(path string, flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigName("opencam-export")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path != "" {
		v.SetConfigFile(path)
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	v.SetEnvPrefix("OPENCAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("export.dir", c.Export.Dir)
	v.SetDefault("export.upload", c.Export.Upload)
	v.SetDefault("s3.endpoint", c.S3.Endpoint)
	v.SetDefault("s3.region", c.S3.Region)
	v.SetDefault("s3.bucket", c.S3.Bucket)
	v.SetDefault("s3.access_key", c.S3.AccessKey)
	v.SetDefault("s3.secret_key", c.S3.SecretKey)
	v.SetDefault("s3.use_ssl", c.S3.UseSSL)
	v.SetDefault("s3.prefix", c.S3.Prefix)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	c.LogLevel = v.GetString("log_level")
	c.Export.Dir = v.GetString("export.dir")
	c.Export.Upload = v.GetBool("export.upload")
	c.S3.Endpoint = v.GetString("s3.endpoint")
	c.S3.Region = v.GetString("s3.region")
	c.S3.Bucket = v.GetString("s3.bucket")
	c.S3.AccessKey = v.GetString("s3.access_key")
	c.S3.SecretKey = v.GetString("s3.secret_key")
	c.S3.UseSSL = v.GetBool("s3.use_ssl")
	c.S3.Prefix = v.GetString("s3.prefix")

	return nil
}

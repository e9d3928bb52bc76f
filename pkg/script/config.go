package script

import (
	"errors"
	"fmt"

	"bytestring/pkg/transform"

	"github.com/spf13/viper"
)

type Config struct {
	LogDB               string `mapstructure:"log_db"`      // SQLite log file; empty logs to the console
	LogConsole          bool   `mapstructure:"log_console"` // Console logging when no LogDB is set
	Debug               bool   `mapstructure:"debug"`
	SnapshotCompression string `mapstructure:"snapshot_compression"` // none, gzip or zstd
	ScriptStrict        bool   `mapstructure:"script_strict"`
	ConfigFile          string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		LogConsole:          true,
		SnapshotCompression: "zstd",
		ScriptStrict:        true,
		ConfigFile:          "bstr",
	}
}

// LoadConfig loads configuration from file and environment (BSTR_*), the
// environment taking precedence. An explicit path must exist; otherwise
// bstr.yaml is looked up in ., /etc/bytestring and $HOME/.bytestring and
// may be absent.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("log_console", cfg.LogConsole)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("snapshot_compression", cfg.SnapshotCompression)
	v.SetDefault("script_strict", cfg.ScriptStrict)
	v.SetDefault("config_file", cfg.ConfigFile)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/bytestring/")
		v.AddConfigPath("$HOME/.bytestring")
	}
	v.SetEnvPrefix("BSTR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	}
	if _, err := cfg.Compression(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Compression resolves SnapshotCompression.
func (c *Config) Compression() (transform.Kind, error) {
	return transform.ParseKind(c.SnapshotCompression)
}

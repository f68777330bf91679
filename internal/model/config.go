package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultEndpoint   = "https://api.openai.com/v1/responses"
	DefaultModel      = "gpt-4o-mini"
	DefaultServerAddr = "127.0.0.1:8787"

	BackendKeyring = "keyring"
	BackendLocal   = "local"
)

// CompletionConfig holds settings for the remote completion endpoint.
type CompletionConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Model    string `mapstructure:"model" yaml:"model"`

	// Timeout bounds a single completion call. Zero waits indefinitely.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// APIKeyEnv names an environment variable that, when set, takes
	// precedence over the stored credential. Empty disables the override.
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`
}

// StorageConfig selects where the credential is persisted.
type StorageConfig struct {
	// Backend is "keyring" or "local".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the sqlite database used by the local backend.
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig holds settings for the HTTP relay.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LogConfig controls where and how verbosely the process logs.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Completion CompletionConfig `mapstructure:"completion" yaml:"completion"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Display    DisplayConfig    `mapstructure:"display" yaml:"display"`
}

// ConfigDir returns ~/.config/solo, or the working directory when the home
// directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "solo")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/solo/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Completion: CompletionConfig{
			Endpoint:  DefaultEndpoint,
			Model:     DefaultModel,
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Storage: StorageConfig{
			Backend: BackendKeyring,
			Path:    filepath.Join(ConfigDir(), "solo.db"),
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Log: LogConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := defaultAppConfig()
	v.SetDefault("completion.endpoint", def.Completion.Endpoint)
	v.SetDefault("completion.model", def.Completion.Model)
	v.SetDefault("completion.timeout", def.Completion.Timeout)
	v.SetDefault("completion.api_key_env", def.Completion.APIKeyEnv)
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("display.theme", def.Display.Theme)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendKeyring, BackendLocal:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Completion.Timeout < 0 {
		return fmt.Errorf("completion timeout must not be negative")
	}
	if c.Completion.Endpoint == "" {
		return fmt.Errorf("completion endpoint is required")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("completion.endpoint", cfg.Completion.Endpoint)
	v.Set("completion.model", cfg.Completion.Model)
	v.Set("completion.timeout", cfg.Completion.Timeout.String())
	v.Set("completion.api_key_env", cfg.Completion.APIKeyEnv)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)
	v.Set("display.theme", cfg.Display.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

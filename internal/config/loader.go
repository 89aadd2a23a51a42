package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix of every setting.
const envPrefix = "CHEMSOLVER"

// newViper builds a Viper instance reading YAML, with CHEMSOLVER_ env
// overrides where nested keys map "." to "_" (server.port becomes
// CHEMSOLVER_SERVER_PORT).
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setViperDefaults(v)
	return v
}

// Load reads the YAML file at configPath, merges CHEMSOLVER_* overrides,
// applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from defaults and CHEMSOLVER_* variables only.
//
//	CHEMSOLVER_<SECTION>_<FIELD>   e.g.  CHEMSOLVER_SERVER_PORT, CHEMSOLVER_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// LoadOrEnv loads configPath when it is non-empty and falls back to
// LoadFromEnv otherwise.
func LoadOrEnv(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return Load(configPath)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	v       *viper.Viper
	mu      sync.Mutex
	current *Config
	onError func(error)
}

// Current returns the last valid configuration.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Watch loads configPath and then invokes onChange with every valid
// configuration written to it. Changes that fail to parse or validate are
// reported to onError (when non-nil) and otherwise ignored, leaving Current
// untouched. Only settings safe to change at runtime (log level, default
// locale) should be applied by the callback.
func Watch(configPath string, onChange func(*Config), onError func(error)) (*Watcher, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}

	w := &Watcher{v: v, current: cfg, onError: onError}
	v.OnConfigChange(func(_ fsnotify.Event) {
		next, err := unmarshalAndFinalize(v)
		if err != nil {
			if w.onError != nil {
				w.onError(err)
			}
			return
		}
		w.mu.Lock()
		w.current = next
		w.mu.Unlock()
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
	return w, nil
}

// MustLoad wraps Load and panics on any error. Intended for main().
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending

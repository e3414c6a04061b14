package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix — префикс переменных окружения клиента
const envPrefix = "ROOMOS"

// Load assembles the effective configuration.
// Приоритет снизу вверх: умолчания, затем файл (если указан), затем
// переменные окружения ROOMOS_*. Двойное подчеркивание в имени
// переменной задает вложенность: ROOMOS_SERVER__BASE_URL -> server.base_url.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(DefaultConfig()), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config: file %s not found", path)
			}
			return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
		}
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	transform := func(s string) string {
		key := strings.TrimPrefix(s, envPrefix+"_")
		key = strings.ReplaceAll(key, "__", ".")
		return strings.ToLower(key)
	}
	if err := k.Load(env.Provider(envPrefix, ".", transform), nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию до запуска
func (c Config) Validate() error {
	if c.Server.BaseURL == "" {
		return errors.New("config: server.base_url is required")
	}
	if c.Storage.Driver != "bolt" && c.Storage.Driver != "sqlite" {
		return fmt.Errorf("config: unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return errors.New("config: storage.path is required")
	}
	if c.Sync.ProbeInterval <= 0 {
		return errors.New("config: sync.probe_interval must be positive")
	}
	return nil
}

// parserFor выбирает парсер по расширению файла
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("config: unsupported file extension %q", ext)
	}
}

// defaultsMap converts the defaults into a map for the confmap provider
func defaultsMap(cfg Config) map[string]any {
	return map[string]any{
		"server": map[string]any{
			"base_url": cfg.Server.BaseURL,
			"timeout":  cfg.Server.Timeout,
		},
		"storage": map[string]any{
			"driver": cfg.Storage.Driver,
			"path":   cfg.Storage.Path,
		},
		"sync": map[string]any{
			"startup_delay":  cfg.Sync.StartupDelay,
			"probe_interval": cfg.Sync.ProbeInterval,
		},
		"logging": map[string]any{
			"level":  cfg.Logging.Level,
			"format": cfg.Logging.Format,
		},
		"metrics": map[string]any{
			"listen": cfg.Metrics.Listen,
		},
	}
}

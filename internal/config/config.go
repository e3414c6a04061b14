package config

import "time"

// Config — полная конфигурация клиента
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Sync    SyncConfig    `koanf:"sync"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ServerConfig описывает подключение к серверу RoomOS
type ServerConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// StorageConfig описывает локальное хранилище
type StorageConfig struct {
	// Driver — "bolt" или "sqlite"
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
}

// SyncConfig описывает движок синхронизации
type SyncConfig struct {
	// StartupDelay — пауза перед первой разгрузкой очереди после старта
	StartupDelay time.Duration `koanf:"startup_delay"`
	// ProbeInterval — период проверки связи с сервером
	ProbeInterval time.Duration `koanf:"probe_interval"`
}

// LoggingConfig описывает формат и уровень логов
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsConfig описывает HTTP-листенер метрик.
// Пустой адрес — метрики не публикуются.
type MetricsConfig struct {
	Listen string `koanf:"listen"`
}

// DefaultConfig returns the built-in defaults, overridable by file and env
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "bolt",
			Path:   "roomos-client.db",
		},
		Sync: SyncConfig{
			StartupDelay:  2 * time.Second,
			ProbeInterval: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

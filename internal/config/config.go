package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация приложения (config.toml)
type Config struct {
	Service ServiceConfig `toml:"service"`
	Server  ServerConfig  `toml:"server"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Mock    MockConfig    `toml:"mock"`
}

// ServiceConfig настройки подключения к scheduling service
type ServiceConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

// ServerConfig настройки HTTP-сервера schedmock
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// MockConfig настройки stub-сервиса: детерминированная генерация слотов
// и инъекция задержек/ошибок для воспроизведения "медленного и ненадёжного"
// коллаборатора
type MockConfig struct {
	SlotStartHour int     `toml:"slot_start_hour"` // первый слот дня, час (локальное время сервиса)
	SlotEndHour   int     `toml:"slot_end_hour"`   // верхняя граница последнего слота
	LatencyMs     int     `toml:"latency_ms"`      // искусственная задержка каждого ответа
	ErrorRate     float64 `toml:"error_rate"`      // доля запросов, завершаемых 500 (0..1)
}

// Load загружает и валидирует конфигурацию из toml-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10,
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			Path:        "/metrics",
			ServiceName: "scheduling-client",
		},
		Mock: MockConfig{
			SlotStartHour: 9,
			SlotEndHour:   17,
		},
	}
}

func (c *Config) validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("config: service.base_url is required")
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("config: service.timeout must be positive")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: server.http_port must be in (0, 65535]")
	}
	if c.Mock.SlotStartHour < 0 || c.Mock.SlotEndHour > 24 || c.Mock.SlotStartHour >= c.Mock.SlotEndHour {
		return fmt.Errorf("config: mock slot hours must satisfy 0 <= start < end <= 24")
	}
	if c.Mock.ErrorRate < 0 || c.Mock.ErrorRate > 1 {
		return fmt.Errorf("config: mock.error_rate must be in [0, 1]")
	}
	return nil
}

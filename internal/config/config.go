package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"alugaki/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Logging    LoggingConfig    `yaml:"logging"`
	Redis      RedisConfig      `yaml:"redis"`
	Session    SessionConfig    `yaml:"session"`
	Mock       MockConfig       `yaml:"mock"`
	API        APIConfig        `yaml:"api"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Exports    ExportConfig     `yaml:"exports"`
	Users      []models.User    `yaml:"users"`
	Items      []models.Item    `yaml:"items"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// SessionConfig selects where the single durable session record lives.
type SessionConfig struct {
	Backend  string `yaml:"backend"` // sqlite | redis | memory
	Path     string `yaml:"path"`    // sqlite file location
	Key      string `yaml:"key"`     // well-known record key
	TTLHours int    `yaml:"ttl_hours"`
}

func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// MockConfig tunes the simulated API latency applied by every service call.
type MockConfig struct {
	LatencyMS int `yaml:"latency_ms"`
}

func (c MockConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMS) * time.Millisecond
}

type APIConfig struct {
	Enabled   bool               `yaml:"enabled"`
	Port      int                `yaml:"port"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; present values take precedence in ${VAR} expansion.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown session backend: %s", c.Session.Backend)
	}

	if c.Session.Backend == "sqlite" && c.Session.Path == "" {
		return errors.New("session path is required for the sqlite backend")
	}
	if c.Session.Backend == "redis" && c.Redis.Address == "" {
		return errors.New("redis address is required for the redis backend")
	}

	if err := ValidateSeedItems(c.Items); err != nil {
		return err
	}
	return ValidateSeedUsers(c.Users)
}

func ValidateSeedItems(items []models.Item) error {
	itemIDs := make(map[string]bool)
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("seed item '%s' has an empty id", item.Title)
		}
		if itemIDs[item.ID] {
			return fmt.Errorf("duplicate seed item id found: %s", item.ID)
		}
		itemIDs[item.ID] = true
		if !item.Category.Valid() {
			return fmt.Errorf("seed item '%s' has unknown category: %s", item.Title, item.Category)
		}
	}
	return nil
}

func ValidateSeedUsers(users []models.User) error {
	ids := make(map[string]bool)
	emails := make(map[string]bool)
	for _, user := range users {
		if user.ID == "" {
			return fmt.Errorf("seed user '%s' has an empty id", user.Name)
		}
		if ids[user.ID] {
			return fmt.Errorf("duplicate seed user id found: %s", user.ID)
		}
		ids[user.ID] = true
		if emails[user.Email] {
			return fmt.Errorf("duplicate seed user email found: %s", user.Email)
		}
		emails[user.Email] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Session.Backend == "" {
		c.Session.Backend = "sqlite"
	}
	if c.Session.Path == "" {
		c.Session.Path = "data/session.db"
	}
	if c.Session.Key == "" {
		c.Session.Key = "alugaki:session_user"
	}

	if c.Mock.LatencyMS == 0 {
		c.Mock.LatencyMS = 500
	}

	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

// Lock backends
const (
	LockBackendRedis  = "redis"
	LockBackendMemory = "memory"
)

// Inference providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderGroq      = "groq"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Store     StoreConfig     `envconfig:"STORE"`
	Database  DatabaseConfig  `envconfig:"DB"`
	Mongo     MongoConfig     `envconfig:"MONGO"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	Storage   StorageConfig   `envconfig:"STORAGE"`
	Inference InferenceConfig `envconfig:"INFERENCE"`
	Worker    WorkerConfig    `envconfig:"WORKER"`
	Dashboard DashboardConfig `envconfig:"DASHBOARD"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `split_words:"true" default:"8080"`
	Host            string   `split_words:"true" default:"0.0.0.0"`
	Environment     string   `split_words:"true" default:"development"`
	AllowedOrigins  []string `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout int      `split_words:"true" default:"10"`
}

// StoreConfig selects the document store backing videos, corpora and analyses
type StoreConfig struct {
	Driver string `split_words:"true" default:"postgres"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"comment_analytics"`
	SSLMode     string `split_words:"true" default:"disable"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"false"`
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string        `split_words:"true" default:"mongodb://localhost:27017"`
	Database string        `split_words:"true" default:"comment_analytics"`
	Timeout  time.Duration `split_words:"true" default:"10s"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

// StorageConfig holds the snapshot archive configuration
type StorageConfig struct {
	Enabled         bool   `split_words:"true" default:"false"`
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true" default:"minioadmin"`
	SecretAccessKey string `split_words:"true" default:"minioadmin"`
	BucketName      string `split_words:"true" default:"comment-analytics"`
	UseSSL          bool   `split_words:"true" default:"false"`
}

// InferenceConfig configures the text-inference backend used by extractors
type InferenceConfig struct {
	Provider    string        `split_words:"true" default:"openai"`
	APIKey      string        `split_words:"true"`
	BaseURL     string        `split_words:"true"`
	Model       string        `split_words:"true" default:"gpt-4o-mini"`
	Temperature float64       `split_words:"true" default:"0.2"`
	MaxTokens   int           `split_words:"true" default:"2048"`
	CallTimeout time.Duration `split_words:"true" default:"60s"`
	RetryWindow time.Duration `split_words:"true" default:"20s"`
}

// WorkerConfig configures the background analysis workers
type WorkerConfig struct {
	Count        int           `split_words:"true" default:"2"`
	PollInterval time.Duration `split_words:"true" default:"2s"`
	JobTimeout   time.Duration `split_words:"true" default:"5m"`
	MaxRetries   int           `split_words:"true" default:"3"`
	LockTTL      time.Duration `split_words:"true" default:"10m"`
	StuckAfter   time.Duration `split_words:"true" default:"15m"`
	LockBackend  string        `split_words:"true" default:"redis"`
}

// DashboardConfig holds defaults for the dashboard endpoint
type DashboardConfig struct {
	DefaultPeriodDays int `split_words:"true" default:"30"`
	DefaultTrendCount int `split_words:"true" default:"10"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMongo:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMongo, c.Store.Driver)
	}

	c.Inference.Provider = strings.ToLower(strings.TrimSpace(c.Inference.Provider))
	switch c.Inference.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderGroq:
	default:
		return fmt.Errorf("unsupported INFERENCE_PROVIDER %q", c.Inference.Provider)
	}
	if c.Inference.APIKey == "" {
		return fmt.Errorf("INFERENCE_API_KEY is required")
	}
	if c.Inference.CallTimeout <= 0 {
		return fmt.Errorf("INFERENCE_CALL_TIMEOUT must be positive")
	}

	c.Worker.LockBackend = strings.ToLower(strings.TrimSpace(c.Worker.LockBackend))
	switch c.Worker.LockBackend {
	case LockBackendRedis, LockBackendMemory:
	default:
		return fmt.Errorf("WORKER_LOCK_BACKEND must be %q or %q, got %q", LockBackendRedis, LockBackendMemory, c.Worker.LockBackend)
	}

	if c.Worker.Count < 1 {
		c.Worker.Count = 1
	}
	if c.Dashboard.DefaultPeriodDays < 1 {
		c.Dashboard.DefaultPeriodDays = 1
	}
	if c.Dashboard.DefaultTrendCount < 1 {
		c.Dashboard.DefaultTrendCount = 1
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

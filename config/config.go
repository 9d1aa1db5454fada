package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/completion"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServerAddr  string   `mapstructure:"server_addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	DBDriver   string `mapstructure:"db_driver"`
	DBHost     string `mapstructure:"db_host"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBPort     string `mapstructure:"db_port"`
	SQLitePath string `mapstructure:"sqlite_path"`

	// An empty RedisAddr disables the cache.
	RedisAddr     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`

	// Log configuration
	LogLevel      string `mapstructure:"log_level"`
	LogFilename   string `mapstructure:"log_filename"`
	LogMaxSize    int    `mapstructure:"log_max_size"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAge     int    `mapstructure:"log_max_age"`
	LogCompress   bool   `mapstructure:"log_compress"`

	// Model provider: openai, ollama or none.
	AIProvider     string `mapstructure:"ai_provider"`
	OpenAIAPIKey   string `mapstructure:"openai_api_key"`
	OpenAIModel    string `mapstructure:"openai_model"`
	OpenAIBaseURL  string `mapstructure:"openai_base_url"`
	OllamaEndpoint string `mapstructure:"ollama_endpoint"`
	OllamaModel    string `mapstructure:"ollama_model"`

	ExecutionTimeout time.Duration `mapstructure:"execution_timeout"`
	RetryBaseDelay   time.Duration `mapstructure:"retry_base_delay"`
	MaxRetries       int           `mapstructure:"max_retries"`

	SeedOnStart bool `mapstructure:"seed_on_start"`
}

var defaults = map[string]any{
	"server_addr":       ":8080",
	"cors_origins":      []string{"http://localhost:5173", "http://localhost:8080"},
	"db_driver":         DriverPostgres,
	"db_host":           "localhost",
	"db_user":           "postgres",
	"db_password":       "",
	"db_name":           "prompt_workshop",
	"db_port":           "5432",
	"sqlite_path":       "prompt_workshop.db",
	"redis_host":        "",
	"redis_port":        "6379",
	"redis_password":    "",
	"log_level":         "INFO",
	"log_filename":      "logs/app.log",
	"log_max_size":      100,
	"log_max_backups":   3,
	"log_max_age":       28,
	"log_compress":      true,
	"ai_provider":       completion.ProviderNone,
	"openai_api_key":    "",
	"openai_model":      "gpt-4o-mini",
	"openai_base_url":   "",
	"ollama_endpoint":   "http://localhost:11434",
	"ollama_model":      "llama3.1",
	"execution_timeout": 2 * time.Minute,
	"retry_base_delay":  time.Second,
	"max_retries":       3,
	"seed_on_start":     false,
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

// Logger returns the logger settings.
func (c *Config) Logger() *logger.Config {
	return &logger.Config{
		Level:      c.LogLevel,
		Filename:   c.LogFilename,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
		Compress:   c.LogCompress,
	}
}

// Completion returns the model provider settings.
func (c *Config) Completion() completion.Config {
	return completion.Config{
		Provider:       c.AIProvider,
		APIKey:         c.OpenAIAPIKey,
		Model:          c.OpenAIModel,
		BaseURL:        c.OpenAIBaseURL,
		OllamaEndpoint: c.OllamaEndpoint,
		OllamaModel:    c.OllamaModel,
		HTTPTimeout:    c.ExecutionTimeout,
	}
}

// LoadConfig reads .env, then CONFIG_FILE or ./config.yaml when present, then
// environment variables.
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file path. An empty
// path falls back to CONFIG_FILE and then to an optional ./config.yaml.
func LoadConfigFile(path string) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.ExecutionTimeout <= 0 {
		return errors.New("execution_timeout must be positive")
	}
	if c.RetryBaseDelay < 0 {
		return errors.New("retry_base_delay must not be negative")
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries must not be negative")
	}
	return nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver          string        `yaml:"db_driver"`
	DBHost            string        `yaml:"db_host"`
	DBPort            string        `yaml:"db_port"`
	DBUser            string        `yaml:"db_user"`
	DBPassword        string        `yaml:"db_password"`
	DBName            string        `yaml:"db_name"`
	DBSSLMode         string        `yaml:"db_sslmode"`
	DBPath            string        `yaml:"db_path"`
	DBMaxOpenConns    int           `yaml:"db_max_open_conns"`
	DBMaxIdleConns    int           `yaml:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `yaml:"db_conn_max_lifetime"`
	ServerPort        string        `yaml:"server_port"`
	GinMode           string        `yaml:"gin_mode"`
	LogLevel          string        `yaml:"log_level"`
	JWTSecret         string        `yaml:"jwt_secret"`
	JWTExpiryMinutes  int           `yaml:"jwt_expiry_minutes"`
	BcryptCost        int           `yaml:"bcrypt_cost"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DBDriver:          "postgres",
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "taskboard_user",
		DBPassword:        "taskboard_pass",
		DBName:            "taskboard_db",
		DBSSLMode:         "disable",
		DBPath:            "taskboard.db",
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    5,
		DBConnMaxLifetime: 5 * time.Minute,
		ServerPort:        "8080",
		GinMode:           "release",
		LogLevel:          "info",
		JWTSecret:         "supersecretkey",
		JWTExpiryMinutes:  30,
		BcryptCost:        10,
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and the environment (a .env file is loaded first if present).
// Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Default()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSLMODE", cfg.DBSSLMode)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)

	var err error
	if cfg.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.JWTExpiryMinutes, err = getEnvInt("JWT_EXPIRY_MINUTES", cfg.JWTExpiryMinutes); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getEnvInt("BCRYPT_COST", cfg.BcryptCost); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("DB_CONN_MAX_LIFETIME"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
		}
		cfg.DBConnMaxLifetime = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTExpiryMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRY_MINUTES must be positive, got %d", c.JWTExpiryMinutes)
	}
	return nil
}

// TokenTTL is the lifetime of issued access tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiryMinutes) * time.Minute
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

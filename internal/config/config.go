package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for the order service.
type Config struct {
	Port              int
	LogLevel          string
	DatabaseURL       string // empty selects the in-memory store
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// fileConfig is the optional YAML config file layout. Environment
// variables take precedence over file values.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	DB struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"db"`
}

// Load reads configuration from environment variables (and the optional
// YAML file named by CONFIG_FILE), applies defaults, and validates
// values. It returns an error for any invalid value.
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &file); err != nil {
			return nil, err
		}
	}

	defaultPort := 8080
	if file.Server.Port != 0 {
		defaultPort = file.Server.Port
	}
	port, err := getInt("PORT", defaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	readHeaderTimeout, err := getDuration("READ_HEADER_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_HEADER_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:              port,
		LogLevel:          logLevel,
		DatabaseURL:       databaseURL(&file),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ShutdownTimeout:   shutdownTimeout,
	}, nil
}

// databaseURL resolves the Postgres DSN: DATABASE_URL wins, then the
// POSTGRES_* variables, then the config file's db section. Empty means
// no database is configured.
func databaseURL(file *fileConfig) string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	user := getStr("POSTGRES_USER", file.DB.User)
	if user == "" {
		return ""
	}
	password := getStr("POSTGRES_PASSWORD", file.DB.Password)
	host := getStr("POSTGRES_HOST", file.DB.Host)
	if host == "" {
		host = "localhost"
	}
	portStr := getStr("POSTGRES_PORT", "")
	if portStr == "" {
		if file.DB.Port != 0 {
			portStr = strconv.Itoa(file.DB.Port)
		} else {
			portStr = "5432"
		}
	}
	name := getStr("POSTGRES_DB", file.DB.Name)
	if name == "" {
		name = "orders_db"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, portStr, name)
}

func loadFile(path string, out *fileConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	return nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

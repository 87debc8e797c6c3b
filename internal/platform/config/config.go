package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Addr               string
	Environment        string
	StoreDriver        string
	DatabaseURL        string
	MySQLDSN           string
	SQLitePath         string
	MigrationsDir      string
	RunMigrations      bool
	JWTSecret          string
	TokenTTL           time.Duration
	DataEncryptionKey  string
	PayslipDir         string
	PayrollAllowances  float64
	PayrollDeductions  float64
	PayrollRunInterval time.Duration
	SeedAdminUsername  string
	SeedAdminPassword  string
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	LogLevel           string
	EmailEnabled       bool
	EmailFrom          string
	PayrollNotifyEmail string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	SMTPUseTLS         bool
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set take precedence over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MySQLDSN:           getEnv("MYSQL_DSN", ""),
		SQLitePath:         getEnv("SQLITE_PATH", "staffpay.db"),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 12*time.Hour),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		PayslipDir:         getEnv("PAYSLIP_DIR", "storage/payslips"),
		PayrollAllowances:  getEnvFloat("PAYROLL_ALLOWANCES", 2000),
		PayrollDeductions:  getEnvFloat("PAYROLL_DEDUCTIONS", 500),
		PayrollRunInterval: getEnvDuration("PAYROLL_RUN_INTERVAL", 0),
		SeedAdminUsername:  getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword:  getEnv("SEED_ADMIN_PASSWORD", ""),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		EmailEnabled:       getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:          getEnv("EMAIL_FROM", "payroll@staffpay.local"),
		PayrollNotifyEmail: getEnv("PAYROLL_NOTIFY_EMAIL", ""),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:         getEnvBool("SMTP_USE_TLS", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	case StoreMySQL:
		if strings.TrimSpace(c.MySQLDSN) == "" {
			return fmt.Errorf("MYSQL_DSN is required when STORE_DRIVER is mysql")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER is sqlite")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of memory, postgres, mysql, sqlite")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for payslip encryption")
		}
		if c.StoreDriver == StoreMemory {
			return fmt.Errorf("STORE_DRIVER memory is not allowed in production")
		}
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.EmailEnabled && (c.SMTPPort <= 0 || c.SMTPPort > 65535) {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535")
	}
	if c.PayrollRunInterval < 0 {
		return fmt.Errorf("PAYROLL_RUN_INTERVAL must not be negative")
	}
	return nil
}

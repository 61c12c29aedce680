package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Numbering NumberingConfig
	Tracing   TracingConfig
	Log       LogConfig
	Phone     PhoneConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests       int
	Duration       int
	PublicRequests int
	PublicDuration int
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	LockTTL  time.Duration
	// LockWait bounds how long a conversion waits for a lock held by another instance
	LockWait time.Duration
}

type NumberingConfig struct {
	Padding  int
	Prefixes map[string]string
}

type TracingConfig struct {
	Enabled bool
}

type LogConfig struct {
	Level  string
	Format string
}

type PhoneConfig struct {
	DefaultRegion string
}

type SeedConfig struct {
	CompanyName string
	CompanySlug string
	Currency    string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		GetLogger().Warnf(".env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "ledger-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "ledger")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PUBLIC_RATE_LIMIT_REQUESTS", 20)
	viper.SetDefault("PUBLIC_RATE_LIMIT_DURATION", 60)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDRESS", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_LOCK_TTL_SECONDS", 30)
	viper.SetDefault("REDIS_LOCK_WAIT_SECONDS", 5)
	viper.SetDefault("NUMBERING_PADDING", 4)
	viper.SetDefault("NUMBERING_PREFIX_INVOICE", "INV-")
	viper.SetDefault("NUMBERING_PREFIX_QUOTE", "QUO-")
	viper.SetDefault("NUMBERING_PREFIX_WORK_ORDER", "WO-")
	viper.SetDefault("NUMBERING_PREFIX_TRACKING", "TRK-")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("PHONE_DEFAULT_REGION", "US")
	viper.SetDefault("SEED_COMPANY_NAME", "Default Company")
	viper.SetDefault("SEED_COMPANY_SLUG", "default")
	viper.SetDefault("SEED_COMPANY_CURRENCY", "EUR")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			SSLMode:      viper.GetString("DB_SSL_MODE"),
			Timezone:     viper.GetString("DB_TIMEZONE"),
			LogLevel:     viper.GetString("DB_LOG_LEVEL"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests:       viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration:       viper.GetInt("RATE_LIMIT_DURATION"),
			PublicRequests: viper.GetInt("PUBLIC_RATE_LIMIT_REQUESTS"),
			PublicDuration: viper.GetInt("PUBLIC_RATE_LIMIT_DURATION"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Address:  viper.GetString("REDIS_ADDRESS"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			LockTTL:  time.Duration(viper.GetInt("REDIS_LOCK_TTL_SECONDS")) * time.Second,
			LockWait: time.Duration(viper.GetInt("REDIS_LOCK_WAIT_SECONDS")) * time.Second,
		},
		Numbering: NumberingConfig{
			Padding: viper.GetInt("NUMBERING_PADDING"),
			Prefixes: map[string]string{
				"invoice":    viper.GetString("NUMBERING_PREFIX_INVOICE"),
				"quote":      viper.GetString("NUMBERING_PREFIX_QUOTE"),
				"work_order": viper.GetString("NUMBERING_PREFIX_WORK_ORDER"),
				"tracking":   viper.GetString("NUMBERING_PREFIX_TRACKING"),
			},
		},
		Tracing: TracingConfig{
			Enabled: viper.GetBool("TRACING_ENABLED"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format: strings.ToLower(viper.GetString("LOG_FORMAT")),
		},
		Phone: PhoneConfig{
			DefaultRegion: strings.ToUpper(viper.GetString("PHONE_DEFAULT_REGION")),
		},
		Seed: SeedConfig{
			CompanyName: viper.GetString("SEED_COMPANY_NAME"),
			CompanySlug: viper.GetString("SEED_COMPANY_SLUG"),
			Currency:    viper.GetString("SEED_COMPANY_CURRENCY"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	Primary   DatasourceConfig
	Secondary DatasourceConfig
	Pool      PoolConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	HTTPPort               string
	ShutdownTimeoutSeconds int
	PeerURL                string // base URL of the peer service (demo2 -> demo1)
}

// DatasourceConfig holds one independently configured database connection.
// Two of these exist: the primary carries all business transactions, the
// secondary is provisioned alongside it but left idle.
type DatasourceConfig struct {
	URL      string
	Username string
	Password string
	Driver   string // postgres or mysql
}

// PoolConfig holds connection pool sizing shared by both datasources
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string
	Format           string
	OutputPath       string
	SlowQuerySeconds float64
	EnableSampling   bool
	ServiceName      string
	ServiceVersion   string
}

// RedisConfig holds configuration for the Redis connection
type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
}

// RateLimitConfig holds configuration for the HTTP rate limiter
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstCapacity     int
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app") // Look for app.env
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.App.HTTPPort = viper.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.PeerURL = viper.GetString("PEER_URL")

	config.Primary.URL = viper.GetString("PRIMARY_DB_URL")
	config.Primary.Username = viper.GetString("PRIMARY_DB_USERNAME")
	config.Primary.Password = viper.GetString("PRIMARY_DB_PASSWORD")
	config.Primary.Driver = viper.GetString("PRIMARY_DB_DRIVER")

	config.Secondary.URL = viper.GetString("SECONDARY_DB_URL")
	config.Secondary.Username = viper.GetString("SECONDARY_DB_USERNAME")
	config.Secondary.Password = viper.GetString("SECONDARY_DB_PASSWORD")
	config.Secondary.Driver = viper.GetString("SECONDARY_DB_DRIVER")

	config.Pool.MaxOpenConns = viper.GetInt("DB_MAX_OPEN_CONNS")
	config.Pool.MaxIdleConns = viper.GetInt("DB_MAX_IDLE_CONNS")
	config.Pool.ConnMaxLifetime = viper.GetInt("DB_CONN_MAX_LIFETIME_SECONDS")
	config.Pool.ConnMaxIdleTime = viper.GetInt("DB_CONN_MAX_IDLE_TIME_SECONDS")

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = viper.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = viper.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = viper.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = viper.GetString("SERVICE_VERSION")

	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.MaxRetries = viper.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = viper.GetInt("REDIS_POOL_SIZE")
	config.Redis.MinIdleConn = viper.GetInt("REDIS_MIN_IDLE_CONNS")

	config.RateLimit.Enabled = viper.GetBool("RATELIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = viper.GetFloat64("RATELIMIT_REQUESTS_PER_SECOND")
	config.RateLimit.BurstCapacity = viper.GetInt("RATELIMIT_BURST_CAPACITY")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that the configuration is usable before wiring dependencies.
func (c *Config) Validate() error {
	if c.App.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT must not be empty")
	}
	for name, ds := range map[string]DatasourceConfig{"primary": c.Primary, "secondary": c.Secondary} {
		if ds.URL == "" {
			return fmt.Errorf("%s datasource URL must not be empty", name)
		}
		if ds.Driver != "postgres" && ds.Driver != "mysql" {
			return fmt.Errorf("%s datasource driver %q is not supported", name, ds.Driver)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PEER_URL", "http://demo1-service")

	viper.SetDefault("PRIMARY_DB_URL", "postgres://localhost:5432/demo?sslmode=disable")
	viper.SetDefault("PRIMARY_DB_USERNAME", "postgres")
	viper.SetDefault("PRIMARY_DB_PASSWORD", "postgres")
	viper.SetDefault("PRIMARY_DB_DRIVER", "postgres")

	viper.SetDefault("SECONDARY_DB_URL", "postgres://localhost:5433/demo?sslmode=disable")
	viper.SetDefault("SECONDARY_DB_USERNAME", "postgres")
	viper.SetDefault("SECONDARY_DB_PASSWORD", "postgres")
	viper.SetDefault("SECONDARY_DB_DRIVER", "postgres")

	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_SECONDS", 300)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)

	env := viper.GetString("APP_ENV")
	if env == "production" {
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("LOG_FORMAT", "json")
		viper.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("LOG_FORMAT", "console")
		viper.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	viper.SetDefault("SERVICE_NAME", "demo-user-service")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_MAX_RETRIES", 3)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("REDIS_MIN_IDLE_CONNS", 2)

	viper.SetDefault("RATELIMIT_ENABLED", false)
	viper.SetDefault("RATELIMIT_REQUESTS_PER_SECOND", 10.0)
	viper.SetDefault("RATELIMIT_BURST_CAPACITY", 20)
}

package config

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Cache     CacheConfig     `mapstructure:"cache"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`

	// Runtime flags, set from the command line rather than the file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`

	// Live value behind CourseTreeTTL; the config watcher swaps it
	// while request handlers read it.
	courseTreeTTL atomic.Int64
}

// CourseTreeTTL returns the current course-tree cache TTL.
func (c *Config) CourseTreeTTL() time.Duration {
	return time.Duration(c.courseTreeTTL.Load())
}

// SetCourseTreeTTL replaces the cache TTL without stopping readers.
func (c *Config) SetCourseTreeTTL(d time.Duration) {
	c.courseTreeTTL.Store(int64(d))
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	ExpireTime        time.Duration `mapstructure:"expire_hours"`
	RefreshExpireTime time.Duration `mapstructure:"refresh_expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig is the file-facing shape for the course-tree
// presentation cache. Entries may be served stale for up to TTL; there
// is no active invalidation. Runtime readers go through
// Config.CourseTreeTTL, which stays safe under hot reload.
type CacheConfig struct {
	CourseTreeTTL time.Duration `mapstructure:"course_tree_ttl_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServiceName       string `mapstructure:"service_name"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// BootstrapConfig seeds the one-time superuser account in release
// mode. All three fields must be set for the seed to run.
type BootstrapConfig struct {
	AdminName     string `mapstructure:"admin_name"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("ELEARN")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.service_name", "TRACING_SERVICE_NAME")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Bootstrap superuser
	viper.BindEnv("bootstrap.admin_name", "BOOTSTRAP_ADMIN_NAME")
	viper.BindEnv("bootstrap.admin_email", "BOOTSTRAP_ADMIN_EMAIL")
	viper.BindEnv("bootstrap.admin_password", "BOOTSTRAP_ADMIN_PASSWORD")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.JWT.RefreshExpireTime = cfg.JWT.RefreshExpireTime * time.Hour
	if cfg.JWT.RefreshExpireTime == 0 {
		cfg.JWT.RefreshExpireTime = 7 * 24 * time.Hour
	}

	cfg.Cache.CourseTreeTTL = cfg.Cache.CourseTreeTTL * time.Minute
	if cfg.Cache.CourseTreeTTL == 0 {
		cfg.Cache.CourseTreeTTL = 15 * time.Minute
	}
	cfg.SetCourseTreeTTL(cfg.Cache.CourseTreeTTL)

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}

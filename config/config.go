package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via config files or the environment.
type AppConfig struct {
	AppPort         string
	JWTSecret       string
	TokenTTLMinutes int
	DatabaseURI     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	// Redis for response caching
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Request throttling
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Admins
	AdminEmails []string
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
// Precedence: config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

type jsonConfig struct {
	AppPort            string   `json:"app_port"`
	JWTSecret          string   `json:"jwt_secret"`
	TokenTTLMinutes    int      `json:"token_ttl_minutes"`
	DatabaseURI        string   `json:"database_uri"`
	DBHost             string   `json:"db_host"`
	DBPort             string   `json:"db_port"`
	DBUser             string   `json:"db_user"`
	DBPassword         string   `json:"db_password"`
	DBName             string   `json:"db_name"`
	RedisHost          string   `json:"redis_host"`
	RedisPort          int      `json:"redis_port"`
	RedisDB            int      `json:"redis_db"`
	RedisPassword      string   `json:"redis_password"`
	GinMode            string   `json:"gin_mode"`
	GinPath            string   `json:"gin_path"`
	LogLevel           string   `json:"log_level"`
	LogPath            string   `json:"log_path"`
	LogMaxSizeMB       int      `json:"log_max_size_mb"`
	LogMaxBackups      int      `json:"log_max_backups"`
	LogMaxAgeDays      int      `json:"log_max_age_days"`
	LogCompress        bool     `json:"log_compress"`
	RateLimitPerMinute int      `json:"rate_limit_per_minute"`
	AllowedOrigins     []string `json:"allowed_origins"`
	AdminEmails        []string `json:"admin_emails"`
}

func loadJSONConfig(path string, dst *AppConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc jsonConfig
	if err := json.Unmarshal(b, &jc); err != nil {
		log.Printf("warning: failed to parse %s: %v", path, err)
		return err
	}
	dst.AppPort = jc.AppPort
	dst.JWTSecret = jc.JWTSecret
	dst.TokenTTLMinutes = jc.TokenTTLMinutes
	dst.DatabaseURI = jc.DatabaseURI
	dst.DBHost = jc.DBHost
	dst.DBPort = jc.DBPort
	dst.DBUser = jc.DBUser
	dst.DBPassword = jc.DBPassword
	dst.DBName = jc.DBName
	dst.RedisHost = jc.RedisHost
	dst.RedisPort = jc.RedisPort
	dst.RedisDB = jc.RedisDB
	dst.RedisPassword = jc.RedisPassword
	dst.GinMode = jc.GinMode
	dst.GinPath = jc.GinPath
	dst.LogLevel = jc.LogLevel
	dst.LogPath = jc.LogPath
	dst.LogMaxSizeMB = jc.LogMaxSizeMB
	dst.LogMaxBackups = jc.LogMaxBackups
	dst.LogMaxAgeDays = jc.LogMaxAgeDays
	dst.LogCompress = jc.LogCompress
	dst.RateLimitPerMinute = jc.RateLimitPerMinute
	dst.AllowedOrigins = jc.AllowedOrigins
	dst.AdminEmails = jc.AdminEmails
	return nil
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "5000"
	}
	if c.TokenTTLMinutes <= 0 {
		c.TokenTTLMinutes = 60
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "plume"
	}
	if c.DBName == "" {
		c.DBName = "plume"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/gin.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/app.log"
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

func applyEnvOverrides(c *AppConfig) {
	setString(&c.AppPort, "APP_PORT")
	setString(&c.JWTSecret, "JWT_SECRET")
	setInt(&c.TokenTTLMinutes, "TOKEN_TTL_MINUTES")
	setString(&c.DatabaseURI, "DATABASE_URI")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.RedisHost, "REDIS_HOST")
	setInt(&c.RedisPort, "REDIS_PORT")
	setInt(&c.RedisDB, "REDIS_DB")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.GinMode, "GIN_MODE")
	setString(&c.GinPath, "GIN_PATH")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogPath, "LOG_PATH")
	setInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&c.LogCompress, "LOG_COMPRESS")
	setInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	setList(&c.AllowedOrigins, "ALLOWED_ORIGINS")
	setList(&c.AdminEmails, "ADMIN_EMAILS")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setList(dst *[]string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Form     FormConfig
	Notify   NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds the OTP cache configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds session token configuration.
// A single shared secret signs both access and refresh tokens.
type JWTConfig struct {
	Secret           string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// FormConfig holds form-wizard behavior switches
type FormConfig struct {
	// ValidateOnAdvance gates step advancement on the current step
	// passing validation. When false, Next always advances.
	ValidateOnAdvance bool
}

// NotifyConfig holds outbound email/SMS dispatch configuration
type NotifyConfig struct {
	EmailAPIURL string
	EmailAPIKey string
	SMSAPIURL   string
	SMSAPIKey   string
	SenderName  string
	SenderEmail string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtCfg, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Redis:    loadRedisConfig(),
		JWT:      jwtCfg,
		Cookie:   loadCookieConfig(appMode),
		Form:     loadFormConfig(),
		Notify:   loadNotifyConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "wealthdesk"),
	}
}

// loadRedisConfig loads the OTP cache config
func loadRedisConfig() RedisConfig {
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

// loadJWTConfig loads session token config based on mode.
// A missing secret is fatal at process start in prod, never per-request.
func loadJWTConfig(mode string) (JWTConfig, error) {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secret := getEnv(prefix+"JWT_SECRET", "")
	if secret == "" {
		if mode == "prod" {
			return JWTConfig{}, fmt.Errorf("%sJWT_SECRET is required", prefix)
		}
		secret = "dev_only_secret"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           secret,
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "strict"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadFormConfig loads form-wizard switches
func loadFormConfig() FormConfig {
	validate, _ := strconv.ParseBool(getEnv("FORM_VALIDATE_ON_ADVANCE", "true"))
	return FormConfig{
		ValidateOnAdvance: validate,
	}
}

// loadNotifyConfig loads email/SMS dispatch config
func loadNotifyConfig() NotifyConfig {
	return NotifyConfig{
		EmailAPIURL: getEnv("EMAIL_API_URL", "https://api.brevo.com/v3/smtp/email"),
		EmailAPIKey: getEnv("EMAIL_API_KEY", ""),
		SMSAPIURL:   getEnv("SMS_API_URL", ""),
		SMSAPIKey:   getEnv("SMS_API_KEY", ""),
		SenderName:  getEnv("NOTIFY_SENDER_NAME", "WealthDesk"),
		SenderEmail: getEnv("NOTIFY_SENDER_EMAIL", "no-reply@wealthdesk.in"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://app.wealthdesk.in"
	}
	return origins
}

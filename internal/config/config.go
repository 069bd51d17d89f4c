package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Addr           string
		TemplateFolder string
		SecretKey      string
	}
	Postgres struct {
		User     string
		Password string
		Host     string
		DBName   string
		Schema   string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	SMTP struct {
		Sender         string
		SenderPassword string
		Domain         string
		Port           string
	}
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present. Every required variable that is
// missing is reported in a single error so the process fails fast with the
// full list rather than one key at a time.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	require := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{}
	cfg.Postgres.User = require("PG_USER")
	cfg.Postgres.Password = require("PG_PASSWORD")
	cfg.Postgres.Host = require("PG_HOST")
	cfg.Postgres.DBName = require("DB_NAME")
	cfg.Postgres.Schema = require("SCHEMA_NAME")
	cfg.Server.TemplateFolder = require("TEMPLATE_FOLDER")
	cfg.Server.SecretKey = require("SECRET_KEY")
	cfg.SMTP.Sender = require("SENDER")
	cfg.SMTP.SenderPassword = require("PASSWORD_SENDER")
	cfg.SMTP.Domain = require("DOMAIN")
	cfg.SMTP.Port = require("PORT")

	cfg.Server.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}
	cfg.Redis.DB = redisDB

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// PostgresDSN assembles the connection string for gorm's postgres driver.
// The schema is applied through search_path so the models stay schema-agnostic.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?search_path=%s",
		c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.DBName, c.Postgres.Schema)
}

// SMTPAddr returns the mail relay address, e.g. "smtp.example.com:587".
func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("smtp.%s:%s", c.SMTP.Domain, c.SMTP.Port)
}

// SMTPHost returns the relay hostname used for STARTTLS verification and AUTH.
func (c *Config) SMTPHost() string {
	return "smtp." + c.SMTP.Domain
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

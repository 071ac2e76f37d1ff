package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	GinMode     string
	CorsOrigins []string
	AppURL      string
	EventName   string

	DB   DBConfig
	SMTP SMTPConfig
	Auth AuthConfig
}

type DBConfig struct {
	Driver     string
	URL        string
	User       string
	Pass       string
	Host       string
	Port       string
	Name       string
	SQLitePath string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

// Configured is false when any credential is missing; mail is then only logged.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Port != "" && s.Username != "" && s.Password != ""
}

type AuthConfig struct {
	Enabled        bool
	Username       string
	PasswordHash   string
	SecurityAnswer string
	JWTSecret      string
	TokenTTL       time.Duration
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("EVENT_NAME", "Sự kiện")

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "checkin")
	v.SetDefault("SQLITE_PATH", "checkin.db")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_FROM_NAME", "Check-in")

	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("AUTH_USERNAME", "reception")
	v.SetDefault("AUTH_TOKEN_TTL", "12h")
}

// Load reads .env (optional) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	dbURL := strings.TrimSpace(v.GetString("MYSQL_URL"))
	if dbURL == "" {
		dbURL = strings.TrimSpace(v.GetString("DATABASE_URL"))
	}

	return Config{
		Port:        v.GetString("PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		CorsOrigins: parseList(v.GetString("CORS_ORIGINS")),
		AppURL:      strings.TrimRight(v.GetString("APP_URL"), "/"),
		EventName:   v.GetString("EVENT_NAME"),
		DB: DBConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			URL:        dbURL,
			User:       v.GetString("DB_USER"),
			Pass:       v.GetString("DB_PASS"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			FromName: v.GetString("SMTP_FROM_NAME"),
		},
		Auth: AuthConfig{
			Enabled:        v.GetBool("AUTH_ENABLED"),
			Username:       v.GetString("AUTH_USERNAME"),
			PasswordHash:   v.GetString("AUTH_PASSWORD_HASH"),
			SecurityAnswer: v.GetString("AUTH_SECURITY_ANSWER"),
			JWTSecret:      v.GetString("AUTH_JWT_SECRET"),
			TokenTTL:       v.GetDuration("AUTH_TOKEN_TTL"),
		},
	}
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

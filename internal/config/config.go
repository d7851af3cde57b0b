package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Event    EventConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type AdminConfig struct {
	// Password is the shared admin secret compared on login.
	Password string
	// PasswordBcrypt, when set, takes precedence over Password and is
	// verified with bcrypt instead of a plain comparison.
	PasswordBcrypt string
	// AuthScheme selects the bearer token scheme: "static" (base64 of the
	// secret) or "jwt" (signed with JwtSecret).
	AuthScheme string
	JwtSecret  string
}

type EventConfig struct {
	MessageCreatedTopic string
}

type SessionConfig struct {
	// The single fixed event session bootstrapped on first access.
	FixedSessionId   string
	FixedSessionName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Admin: AdminConfig{
			Password:       getEnv("ADMIN_PASSWORD", ""),
			PasswordBcrypt: getEnv("ADMIN_PASSWORD_BCRYPT", ""),
			AuthScheme:     getEnv("AUTH_SCHEME", "static"),
			JwtSecret:      getEnv("JWT_SECRET", ""),
		},
		Event: EventConfig{
			MessageCreatedTopic: getEnv("MESSAGE_CREATED_TOPIC_NAME", "MESSAGE_CREATED"),
		},
		Session: SessionConfig{
			FixedSessionId:   getEnv("FIXED_SESSION_ID", "martin-isi"),
			FixedSessionName: getEnv("FIXED_SESSION_NAME", "Martin & Isi - USA Farewell"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

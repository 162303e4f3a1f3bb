package config

import (
	"log"
	"os"
	"strings"
)

// DefaultDatabaseURL is the fixed Realtime Database endpoint the viewer reads from.
const DefaultDatabaseURL = "https://research-58228-default-rtdb.asia-southeast1.firebasedatabase.app/"

// Config holds application configuration.
type Config struct {
	Port                    string
	CORSAllowOrigin         []string
	Env                     string
	FirebaseDatabaseURL     string
	FirebaseCredentialsJSON string
	ServiceAccountKeyFile   string
	AuditDatabaseURL        string
	SuggestionLimit         int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	auditURL := os.Getenv("DATABASE_URL")

	if env == "production" && auditURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                    getEnv("PORT", "8080"),
		CORSAllowOrigin:         splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:                     env,
		FirebaseDatabaseURL:     getEnv("FIREBASE_DATABASE_URL", DefaultDatabaseURL),
		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		ServiceAccountKeyFile:   getEnv("SERVICE_ACCOUNT_KEY_FILE", "serviceAccountKey.json"),
		AuditDatabaseURL:        auditURL,
		SuggestionLimit:         3,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

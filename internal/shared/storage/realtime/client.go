package realtime

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"docviewer-backend/internal/shared/telemetry"
)

// Config controls how the Realtime Database client is constructed.
type Config struct {
	DatabaseURL     string
	CredentialsJSON string        // inline service-account JSON (hosted secret)
	KeyFilePath     string        // local service-account key file fallback
	PingTimeout     time.Duration // connectivity check timeout, defaults to 10s
}

// Connect builds a Realtime Database client and verifies connectivity with a
// shallow root read. Credential resolution tries the inline JSON secret first
// and falls back to the local key file; whichever source wins is logged. The
// returned client is owned by the caller and passed explicitly through the app.
func Connect(ctx context.Context, cfg Config) (*db.Client, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("realtime: database URL is empty")
	}

	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		client, err := connectWith(ctx, cfg, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
		if err == nil {
			telemetry.Info("realtime.connected", map[string]any{
				"credential_source": "inline_secret",
				"database_url":      cfg.DatabaseURL,
			})
			return client, nil
		}
		telemetry.Warn("realtime.secret_credentials_failed", map[string]any{
			"error":    err.Error(),
			"fallback": cfg.KeyFilePath,
		})
	}

	keyFile := cfg.KeyFilePath
	if strings.TrimSpace(keyFile) == "" {
		keyFile = "serviceAccountKey.json"
	}
	if _, err := os.Stat(keyFile); err != nil {
		return nil, fmt.Errorf("realtime: no usable credentials: key file %s: %w", keyFile, err)
	}

	client, err := connectWith(ctx, cfg, option.WithCredentialsFile(keyFile))
	if err != nil {
		return nil, fmt.Errorf("realtime: connect with key file %s: %w", keyFile, err)
	}
	telemetry.Info("realtime.connected", map[string]any{
		"credential_source": "key_file",
		"key_file":          keyFile,
		"database_url":      cfg.DatabaseURL,
	})
	return client, nil
}

func connectWith(ctx context.Context, cfg Config, cred option.ClientOption) (*db.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.DatabaseURL}, cred)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("init database client: %w", err)
	}

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 10 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	// Shallow read of the root: cheap auth + reachability check before any
	// request traffic depends on the client.
	var probe map[string]any
	if err := client.NewRef("/").GetShallow(pingCtx, &probe); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return client, nil
}

package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	rtdb "firebase.google.com/go/v4/db"
	"github.com/gin-gonic/gin"

	"docviewer-backend/internal/audit"
	"docviewer-backend/internal/documents"
	"docviewer-backend/internal/session"
	"docviewer-backend/internal/shared/config"
	"docviewer-backend/internal/shared/server"
	storagedb "docviewer-backend/internal/shared/storage/db"
	"docviewer-backend/internal/shared/storage/realtime"
	"docviewer-backend/internal/users"
	"docviewer-backend/internal/viewer"
)

// App holds shared dependencies, constructed once and passed explicitly.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	Realtime *rtdb.Client
	AuditDB  *sql.DB

	UsersRepo users.Repo
	AuditRepo audit.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	AuditService     *audit.Service
	Sessions         *session.Manager

	ViewerHandler    *viewer.Handler
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	rtClient, err := buildRealtime(ctx, cfg)
	if err != nil {
		return nil, err
	}

	auditDB, err := buildAuditDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Realtime: rtClient,
		AuditDB:  auditDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		ViewerHandler:   app.ViewerHandler,
		DocumentHandler: app.DocumentsHandler,
		DatabaseReady:   rtClient != nil,
		AuditReady:      auditDB != nil,
	})

	return app, nil
}

// buildRealtime connects to the remote document database. The connection is
// required: the whole page is a view over it. Dev environments may run
// against the in-memory repo when no credentials are available.
func buildRealtime(ctx context.Context, cfg config.Config) (*rtdb.Client, error) {
	client, err := realtime.Connect(ctx, realtime.Config{
		DatabaseURL:     cfg.FirebaseDatabaseURL,
		CredentialsJSON: cfg.FirebaseCredentialsJSON,
		KeyFilePath:     cfg.ServiceAccountKeyFile,
	})
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: realtime database unavailable; using in-memory users repo: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("bootstrap: connect realtime database: %w (set FIREBASE_CREDENTIALS_JSON or place %s next to the binary)", err, cfg.ServiceAccountKeyFile)
	}
	return client, nil
}

func buildAuditDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.AuditDatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory audit log")
		return nil, nil
	}

	opts := storagedb.OptionsFromEnv(storagedb.DefaultServerOptions())
	auditDB, err := storagedb.Connect(ctx, cfg.AuditDatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: audit database connect failed; using in-memory audit log: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := storagedb.RunMigrations(ctx, auditDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: audit migrations failed; using in-memory audit log: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return auditDB, nil
}

func buildServices(app *App) {
	if app.Realtime != nil {
		app.UsersRepo = &users.FirebaseRepo{Client: app.Realtime}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
	}
	if app.AuditDB != nil {
		app.AuditRepo = &audit.PGRepo{DB: app.AuditDB}
	} else {
		app.AuditRepo = audit.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Config.SuggestionLimit)
	app.DocumentsService = &documents.Service{Users: userDocsAdapter{svc: app.UsersService}}
	app.AuditService = audit.NewService(app.AuditRepo)
	app.Sessions = session.NewManager()

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.ViewerHandler = viewer.NewHandler(app.UsersService, app.DocumentsService, app.Sessions, app.AuditService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type userDocsAdapter struct {
	svc *users.Service
}

func (a userDocsAdapter) GetDocuments(ctx context.Context, userID string) (map[string]documents.Document, error) {
	rec, err := a.svc.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, documents.ErrUserNotFound
		}
		return nil, err
	}
	return rec.User.Documents, nil
}

package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/editor"
	"resume-builder/internal/generate"
	"resume-builder/internal/generate/openai"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ResumesRepo resumes.Repo
	UsersRepo   users.Repo

	ResumesService  *resumes.Service
	GenerateService *generate.Service
	UsersService    *users.Service
	EditorManager   *editor.Manager

	ResumesHandler  *resumes.Handler
	EditorHandler   *editor.Handler
	GenerateHandler *generate.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		ResumesHandler:  app.ResumesHandler,
		EditorHandler:   app.EditorHandler,
		GenerateHandler: app.GenerateHandler,
		UsersHandler:    app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

// Shutdown releases background resources.
func (a *App) Shutdown() {
	if a.EditorManager != nil {
		a.EditorManager.Shutdown()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var resumeRepo resumes.Repo
	var userRepo users.Repo

	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	resumeSvc := &resumes.Service{
		Store: app.Store,
		Repo:  resumeRepo,
	}

	completer := generate.Completer(generate.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" && strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		completer = openaiClient
	}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	editorMgr := editor.NewManager(resumeSvc, app.Config.AutosaveDebounce, app.Config.SessionTTL)

	app.ResumesRepo = resumeRepo
	app.UsersRepo = userRepo
	app.ResumesService = resumeSvc
	app.GenerateService = generate.NewService(completer)
	app.UsersService = userSvc
	app.EditorManager = editorMgr
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.EditorHandler = editor.NewHandler(editorMgr)
	app.GenerateHandler = generate.NewHandler(app.GenerateService)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}

// Package bootstrap wires configuration, storage, LLM providers and handlers
// into a ready-to-serve application.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/applications"
	"resume-studio/internal/assignments"
	googleauth "resume-studio/internal/auth"
	"resume-studio/internal/extract"
	"resume-studio/internal/generation"
	"resume-studio/internal/llm"
	"resume-studio/internal/llm/gemini"
	"resume-studio/internal/llm/openai"
	"resume-studio/internal/profiles"
	"resume-studio/internal/resumes"
	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/config"
	"resume-studio/internal/shared/server"
	"resume-studio/internal/shared/storage/db"
	"resume-studio/internal/shared/storage/object"
	localstore "resume-studio/internal/shared/storage/object/local"
	s3store "resume-studio/internal/shared/storage/object/s3"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/internal/users"
)

// App holds shared dependencies and the router built from them.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client
	Signer *auth.Signer

	UsersService        *users.Service
	ProfilesService     *profiles.Service
	AssignmentsService  *assignments.Service
	ApplicationsService *applications.Service
	GenerationService   *generation.Service
	ResumesService      *resumes.Service
}

// Build prepares every dependency and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

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
		LLM:    buildLLM(cfg),
		Signer: signer,
	}
	app.buildServices()

	app.Router = server.NewRouter(server.RouterDeps{
		Config: cfg,
		Signer: signer,
		Public: []server.RouteRegistrar{
			googleauth.NewGoogleService(googleauth.GoogleConfig{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.GoogleRedirectURL,
				UIRedirect:   cfg.UIRedirectURL,
			}, signer, app.UsersService),
		},
		Handlers: []server.RouteRegistrar{
			users.NewHandler(app.UsersService),
			extract.NewHandler(),
			profiles.NewHandler(app.ProfilesService),
			assignments.NewHandler(app.AssignmentsService),
			applications.NewHandler(app.ApplicationsService),
			generation.NewHandler(app.GenerationService),
			resumes.NewHandler(app.ResumesService),
		},
	})

	return app, nil
}

// Close releases the database pool and any provider clients.
func (a *App) Close() error {
	var errs []error
	if closer, ok := a.LLM.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if a.DB != nil && !db.IsLambdaRuntime() {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func (a *App) buildServices() {
	var (
		userRepo       users.Repo
		assignmentRepo assignments.Repo
		lookup         profiles.AssignmentLookup
		profileRepo    profiles.Repo
		appRepo        applications.Repo
	)
	if a.DB != nil {
		userRepo = &users.PGRepo{DB: a.DB}
		pgAssignments := &assignments.PGRepo{DB: a.DB}
		assignmentRepo, lookup = pgAssignments, pgAssignments
		profileRepo = &profiles.PGRepo{DB: a.DB}
		appRepo = &applications.PGRepo{DB: a.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		memAssignments := assignments.NewMemoryRepo()
		assignmentRepo, lookup = memAssignments, memAssignments
		profileRepo = profiles.NewMemoryRepo(lookup)
		appRepo = applications.NewMemoryRepo()
	}

	a.UsersService = users.NewService(userRepo)
	a.ProfilesService = profiles.NewService(profileRepo)
	a.ProfilesService.Documents = a.Store
	a.AssignmentsService = assignments.NewService(assignmentRepo, a.ProfilesService, a.UsersService)
	a.ApplicationsService = applications.NewService(appRepo, a.Store)
	a.GenerationService = generation.NewService(a.LLM)
	a.ResumesService = resumes.NewService(a.ProfilesService, a.ApplicationsService)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			KMSKeyID:        cfg.SSEKMSKeyID,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildLLM always returns a client. A missing key surfaces per request with
// remediation text rather than failing startup.
func buildLLM(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "gemini":
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		return openai.NewClient(cfg.OpenAIAPIKey)
	}
}

package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/advisor"
	"placement-backend/internal/applications"
	"placement-backend/internal/jobs"
	"placement-backend/internal/llm"
	"placement-backend/internal/llm/gemini"
	"placement-backend/internal/llm/openai"
	"placement-backend/internal/matching"
	"placement-backend/internal/queue"
	"placement-backend/internal/recommendations"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/cache"
	"placement-backend/internal/shared/config"
	"placement-backend/internal/shared/server"
	"placement-backend/internal/shared/storage/db"
	"placement-backend/internal/shared/storage/object"
	localstore "placement-backend/internal/shared/storage/object/local"
	s3store "placement-backend/internal/shared/storage/object/s3"
	"placement-backend/internal/shared/telemetry"
)

const cacheMaxEntries = 4096

// App holds shared dependencies for the API, worker and lambda entry points.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Cache  cache.Store
	Queue  queue.Client

	JobsRepo         jobs.Repo
	ApplicationsRepo applications.Repo

	Normalizer      *resumes.Normalizer
	Ranker          *matching.Ranker
	LLM             llm.Client
	Jobs            *jobs.Service
	Recommendations *recommendations.Service
	Applications    *applications.Service
	Advisor         *advisor.Service
}

// Build prepares every dependency and the router for the API processes.
func Build(cfg config.Config) (*App, error) {
	return build(cfg, db.RoleAPI)
}

// BuildWorker is Build for the rescoring workers, which size the database
// pool for queue consumption.
func BuildWorker(cfg config.Config) (*App, error) {
	return build(cfg, db.RoleWorker)
}

func build(cfg config.Config, role db.Role) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg, role)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Cache:  cache.New(ctx, cfg.RedisURL, cacheMaxEntries),
		Queue:  queueClient,
	}
	if err := buildRepos(app); err != nil {
		return nil, err
	}
	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 cfg,
		JobsHandler:            jobs.NewHandler(app.Jobs),
		RecommendationsHandler: recommendations.NewHandler(app.Recommendations, app.Normalizer),
		ApplicationsHandler:    applications.NewHandler(app.Applications),
		AdvisorHandler:         advisor.NewHandler(app.Advisor, app.Normalizer, app.Recommendations),
	})
	return app, nil
}

// Rescore implements workerproc.Rescorer.
func (a *App) Rescore(ctx context.Context, jobID string) (int, error) {
	return a.Applications.Rescore(ctx, jobID)
}

func buildDB(ctx context.Context, cfg config.Config, role db.Role) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, role)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.QueueURL, cfg.AWSRegion)
}

func buildRepos(app *App) error {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		return nil
	}

	var seed []jobs.Posting
	if path := strings.TrimSpace(app.Config.JobsSeedFile); path != "" {
		loaded, err := jobs.LoadSeedFile(path)
		if err != nil {
			return err
		}
		seed = loaded
	}
	app.JobsRepo = jobs.NewMemoryRepo(seed...)
	app.ApplicationsRepo = applications.NewMemoryRepo()
	telemetry.Info("bootstrap.memory_repos", map[string]any{
		"seeded_jobs": len(seed),
	})
	return nil
}

func buildServices(ctx context.Context, app *App) error {
	cfg := app.Config

	var geminiClient *gemini.Client
	if strings.TrimSpace(cfg.GeminiAPIKey) != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, geminiModel(cfg), cfg.EmbeddingModel)
		if err != nil {
			return err
		}
		geminiClient = client
	}

	var embedder matching.Embedder
	if cfg.EmbeddingProvider == "gemini" && geminiClient != nil {
		embedder = &matching.CachedEmbedder{
			Inner: geminiClient,
			Cache: app.Cache,
			Model: geminiClient.EmbeddingModel(),
			TTL:   cfg.CacheTTL,
		}
	} else {
		log.Printf("bootstrap: no embedding backend; semantic scores disabled")
	}

	llmClient, err := buildLLM(cfg, geminiClient)
	if err != nil {
		return err
	}

	app.Normalizer = &resumes.Normalizer{
		Cache:         app.Cache,
		CacheTTL:      cfg.CacheTTL,
		ParserTimeout: cfg.ParserTimeout,
	}
	app.Ranker = matching.NewRanker(embedder, cfg.EmbeddingTimeout, cfg.MatchConcurrency)
	app.LLM = llmClient
	app.Jobs = jobs.NewService(app.JobsRepo)
	app.Recommendations = recommendations.NewService(app.Jobs, app.Ranker, recommendations.Options{
		MinScore: cfg.RecommendMinScore,
		Limit:    cfg.RecommendLimit,
	})
	app.Applications = &applications.Service{
		Repo:       app.ApplicationsRepo,
		Jobs:       app.JobsRepo,
		Ranker:     app.Ranker,
		Normalizer: app.Normalizer,
		Store:      app.Store,
		Queue:      app.Queue,
	}
	app.Advisor = advisor.NewService(llmClient)
	return nil
}

// buildLLM returns nil when no provider is usable; advisor endpoints then
// answer backend_unavailable.
func buildLLM(cfg config.Config, geminiClient *gemini.Client) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			log.Printf("bootstrap: LLM_PROVIDER=openai without OPENAI_API_KEY; advisor disabled")
			return nil, nil
		}
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return llm.WithRetry(timeoutClient{inner: client, timeout: cfg.LLMTimeout}), nil
	default:
		if geminiClient == nil {
			log.Printf("bootstrap: GEMINI_API_KEY empty; advisor disabled")
			return nil, nil
		}
		return llm.WithRetry(timeoutClient{inner: geminiClient, timeout: cfg.LLMTimeout}), nil
	}
}

func geminiModel(cfg config.Config) string {
	if cfg.LLMProvider == "gemini" {
		return cfg.LLMModel
	}
	return ""
}

// timeoutClient bounds each attempt, so a retry gets a fresh deadline.
type timeoutClient struct {
	inner   llm.Client
	timeout time.Duration
}

func (t timeoutClient) Complete(ctx context.Context, prompt string) (string, error) {
	if t.timeout <= 0 {
		return t.inner.Complete(ctx, prompt)
	}
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Complete(callCtx, prompt)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

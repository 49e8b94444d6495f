package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/promptweaver/api/internal/api/handlers"
	"github.com/promptweaver/api/internal/api/middleware"
	"github.com/promptweaver/api/internal/auth"
	"github.com/promptweaver/api/internal/cache"
	"github.com/promptweaver/api/internal/config"
	"github.com/promptweaver/api/internal/embedding"
	"github.com/promptweaver/api/internal/framework"
	"github.com/promptweaver/api/internal/llm"
	"github.com/promptweaver/api/internal/queue"
	"github.com/promptweaver/api/internal/record"
	"github.com/promptweaver/api/internal/refine"
	"github.com/promptweaver/api/internal/usage"
	"github.com/promptweaver/api/internal/vectorstore"
)

type Router struct {
	mux          *chi.Mux
	db           *pgxpool.Pool
	redis        *redis.Client
	cfg          *config.Config
	jwt          *auth.JWTMiddleware
	llmGW        llm.Gateway
	frameworkSvc *framework.Service
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	gw := llm.NewGateway(cfg.LLM)
	embedSvc := embedding.NewService(gw, cfg.LLM.EmbeddingModel)
	vs := vectorstore.NewPgVectorStore(db)

	return &Router{
		mux:          chi.NewRouter(),
		db:           db,
		redis:        rdb,
		cfg:          cfg,
		jwt:          auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		llmGW:        gw,
		frameworkSvc: framework.NewService(gw, cfg.LLM.DefaultModel, embedSvc, vs),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	recordSvc := record.NewService(record.NewPgStore(rt.db), rt.cfg.Refine.RetentionDays)
	responseCache := cache.NewCache(rt.redis)
	queueClient := queue.NewClient(rt.cfg.Redis)

	generator := refine.NewGenerator(
		rt.llmGW,
		rt.cfg.LLM.DefaultModel,
		rt.cfg.Refine.MaxRetries,
		rt.cfg.Refine.InitialBackoff,
		rt.cfg.LLM.RequestTimeout,
	)
	refineSvc := refine.NewService(
		generator,
		recordSvc,
		responseCache,
		queueClient,
		rt.cfg.Refine.MaxInstructionLength,
		rt.cfg.Refine.CacheTTL,
	)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Refinement: guests allowed, authenticated users get auto-save
		refineH := handlers.NewRefineHandler(refineSvc)
		r.Group(func(r chi.Router) {
			r.Use(rt.jwt.OptionalAuth)
			r.Post("/refine", refineH.Refine)
		})

		// Prompt record lifecycle and usage (auth required)
		recordH := handlers.NewRecordHandler(recordSvc)
		usageH := handlers.NewUsageHandler(usage.NewService(rt.db))
		r.Group(func(r chi.Router) {
			r.Use(rt.jwt.Authenticate)
			r.Route("/prompts", func(r chi.Router) {
				r.Get("/", recordH.List)
				r.Post("/{id}/save", recordH.Save)
				r.Post("/{id}/unsave", recordH.Unsave)
				r.Post("/{id}/favorite", recordH.Favorite)
				r.Post("/{id}/unfavorite", recordH.Unfavorite)
				r.Delete("/{id}", recordH.Delete)
			})
			r.Get("/usage", usageH.Summary)
		})

		// Framework catalog, suggestion, and search (guests allowed)
		frameworkH := handlers.NewFrameworkHandler(rt.frameworkSvc)
		r.Group(func(r chi.Router) {
			r.Use(rt.jwt.OptionalAuth)
			r.Route("/frameworks", func(r chi.Router) {
				r.Get("/", frameworkH.List)
				r.Post("/suggest", frameworkH.Suggest)
				r.Post("/search", frameworkH.Search)
			})
			r.Post("/templates/suggest", frameworkH.SuggestTemplate)
		})
	})

	return r
}

// FrameworkService exposes the framework service for startup tasks such as
// catalog indexing.
func (rt *Router) FrameworkService() *framework.Service {
	return rt.frameworkSvc
}

package app

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"shortr/internal/cache"
	"shortr/internal/config"
	mid "shortr/internal/middleware"
	"shortr/internal/repositories"
	"shortr/internal/services"
)

type App struct {
	cfg config.Config
	db  *gorm.DB

	limiter  *mid.RateLimiter
	resolver *cache.ResolveCache
	handlers *Handlers
}

func New(cfg config.Config, db *gorm.DB) *App {
	urlRepo := repositories.NewURLRepo(db)
	ipStatRepo := repositories.NewIPStatRepo(db)

	codeSvc := services.NewCodeService(cfg, urlRepo)
	redirectSvc := services.NewRedirectService(db, urlRepo, ipStatRepo)
	statsSvc := services.NewStatsService(urlRepo, ipStatRepo)
	qrSvc := services.QRService{}

	resolver := cache.New(redirectSvc, cfg.CacheTTL)
	limiter := mid.NewRateLimiter(cfg.RateLimitPerDay)

	h := NewHandlers(cfg, urlRepo, codeSvc, qrSvc, statsSvc, resolver)

	return &App{
		cfg:      cfg,
		db:       db,
		limiter:  limiter,
		resolver: resolver,
		handlers: h,
	}
}

// Router wires the HTTP surface. On the redirect route the order is
// rate limiter, then cache, then the resolve transaction: a rejected
// request never reaches the cache, and a cached hit still consumes
// the caller's daily quota.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	stop := make(chan struct{})
	go a.limiter.CleanupLoop(stop)

	h := a.handlers

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("shortr is running"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/shorten", h.Shorten)
		api.Get("/urls", h.ListURLs)
	})

	r.Get("/stats/{code}", h.Stats)
	r.With(mid.RateLimitMiddleware(a.limiter)).Get("/{code}", h.Redirect)

	return r
}

func (a *App) Run(addr string) error {
	log.Println("shortr listening on", addr)
	return http.ListenAndServe(addr, a.Router())
}

// ResetCache drops all memoized redirect targets.
func (a *App) ResetCache() {
	a.resolver.Reset()
}

// ResetLimiter clears all per-IP request counters.
func (a *App) ResetLimiter() {
	a.limiter.Reset()
}

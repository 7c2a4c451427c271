package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"giftcases-rest-api/internal/handler"
	"giftcases-rest-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler            *handler.Handler
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	GameHandler        *handler.GameHandler
	LeaderboardHandler *handler.LeaderboardHandler
	AdminHandler       *handler.AdminHandler
	AuthMiddleware     func(http.Handler) http.Handler
	StaticDir          string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	r.Get("/health", cfg.Handler.Health)
	r.Get("/api/captcha", cfg.AuthHandler.Captcha)
	r.Post("/api/register", cfg.AuthHandler.Register)
	r.Post("/api/login", cfg.AuthHandler.Login)
	r.Get("/api/cases", cfg.GameHandler.Cases)
	r.Get("/api/leaders", cfg.LeaderboardHandler.Leaders)

	// AUTHENTICATED routes
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthMiddleware)

		r.Get("/api/user", cfg.UserHandler.Get)
		r.Post("/api/change-avatar", cfg.UserHandler.ChangeAvatar)
		r.Post("/api/open-case", cfg.GameHandler.OpenCase)
		r.Post("/api/sell-item", cfg.GameHandler.SellItem)
		r.Post("/api/activate-promo", cfg.GameHandler.ActivatePromo)
		r.Post("/api/daily-bonus", cfg.GameHandler.DailyBonus)
		r.Get("/api/achievements", cfg.GameHandler.Achievements)

		r.Route("/api/admin", func(r chi.Router) {
			r.Post("/set-balance", cfg.AdminHandler.SetBalance)
			r.Get("/stats", cfg.AdminHandler.Stats)
		})
	})

	// Static SPA: every unmatched GET outside /api serves a file from the
	// static dir, falling back to index.html for client-side routing.
	if cfg.StaticDir != "" {
		r.NotFound(spaHandler(cfg.StaticDir))
	}

	return r
}

func spaHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || strings.HasPrefix(r.URL.Path, "/api") {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, index)
	}
}

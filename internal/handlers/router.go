package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Services はルーターが使うサービス一式
type Services struct {
	Auth   service.AuthService
	Decks  service.DeckService
	Cards  service.CardService
	Review service.ReviewService
}

// NewRouter は /api/v1 以下のルートとミドルウェアを組み立てます
func NewRouter(cfg *config.Config, svc Services, db Pinger, logger *slog.Logger) http.Handler {
	authHandler := NewAuthHandler(svc.Auth)
	deckHandler := NewDeckHandler(svc.Decks, svc.Cards)
	cardHandler := NewCardHandler(svc.Cards, cfg.Upload.MaxImageBytes)
	reviewHandler := NewReviewHandler(svc.Review)
	healthHandler := NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			if cfg.Auth.Enabled {
				r.Use(middleware.JWTAuthMiddleware(cfg.JWT.SecretKey))
			} else {
				logger.Warn("Authentication is disabled. Using X-User-ID header (development only).")
				r.Use(middleware.DevUserContextMiddleware)
			}

			r.Route("/decks", func(r chi.Router) {
				r.Post("/", deckHandler.CreateDeck)
				r.Get("/", deckHandler.ListDecks)
				r.Get("/{deck_id}", deckHandler.GetDeck)
				r.Delete("/{deck_id}", deckHandler.DeleteDeck)
				r.Get("/{deck_id}/cards", deckHandler.ListCards)
				r.Get("/{deck_id}/export", deckHandler.ExportDeck)
			})

			r.Route("/cards", func(r chi.Router) {
				r.Post("/", cardHandler.CreateCard)
				r.Post("/generate", cardHandler.GenerateCard)
				r.Post("/ocr", cardHandler.ExtractWord)
				r.Delete("/{card_id}", cardHandler.DeleteCard)
			})

			r.Route("/study", func(r chi.Router) {
				r.Get("/due", reviewHandler.GetDueCards)
				r.Post("/grade", reviewHandler.GradeCard)
			})
		})
	})

	r.Get("/health", healthHandler.Check)

	return r
}

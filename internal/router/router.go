package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"estudamais-backend/internal/handlers"
	"estudamais-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	folderHandler *handlers.FolderHandler,
	questionHandler *handlers.QuestionHandler,
	practiceHandler *handlers.PracticeHandler,
	simuladoHandler *handlers.SimuladoHandler,
	studyPlanHandler *handlers.StudyPlanHandler,
	timeclockHandler *handlers.TimeclockHandler,
	statisticsHandler *handlers.StatisticsHandler,
	flashcardHandler *handlers.FlashcardHandler,
	exportHandler *handlers.ExportHandler,
	dashboardHandler *handlers.DashboardHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/verify-email", authHandler.VerifyEmail)
			r.Post("/resend-verification", authHandler.ResendVerification)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Folder Routes ────
		r.Route("/folders", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", folderHandler.Create)
			r.Get("/", folderHandler.List)
			r.Get("/{id}", folderHandler.Get)
			r.Put("/{id}", folderHandler.Update)
			r.Delete("/{id}", folderHandler.Delete)
			r.Post("/{id}/questions", questionHandler.Create)
			r.Get("/{id}/questions", questionHandler.ListByFolder)
			r.Get("/{id}/export", exportHandler.QuestionsPDF)
		})

		// ──── Question Routes ────
		r.Route("/questions", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/random", questionHandler.Random)
			r.Get("/{id}", questionHandler.Get)
			r.Put("/{id}", questionHandler.Update)
			r.Delete("/{id}", questionHandler.Delete)

			// Interactive answering state
			r.Route("/{id}/practice", func(r chi.Router) {
				r.Get("/", practiceHandler.Get)
				r.Post("/select", practiceHandler.Select)
				r.Post("/eliminate", practiceHandler.Eliminate)
				r.Post("/confirm", practiceHandler.Confirm)
				r.Post("/reset", practiceHandler.Reset)
			})
		})

		// ──── Simulado Routes ────
		r.Route("/simulados", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/config", simuladoHandler.Config)
			r.Post("/", simuladoHandler.Create)
			r.Get("/{id}", simuladoHandler.Get)
			r.Post("/{id}/answer", simuladoHandler.Answer)
			r.Post("/{id}/position", simuladoHandler.Position)
			r.Post("/{id}/finish", simuladoHandler.Finish)
			r.Get("/{id}/result", simuladoHandler.Result)
		})

		// ──── Study Plan Routes ────
		r.Route("/study-plan", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", studyPlanHandler.List)
			r.Put("/folders/{id}", studyPlanHandler.UpdateProgress)
		})

		// ──── Timeclock Routes ────
		r.Route("/timeclock", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/clock-in", timeclockHandler.ClockIn)
			r.Post("/clock-out", timeclockHandler.ClockOut)
			r.Get("/", timeclockHandler.List)
			r.Delete("/{id}", timeclockHandler.Delete)
		})

		// ──── Statistics Routes ────
		r.Route("/statistics", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", statisticsHandler.Stats)
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", flashcardHandler.Create)
			r.Get("/", flashcardHandler.List)
			r.Delete("/{id}", flashcardHandler.Delete)
		})

		// ──── Dashboard Routes ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/summary", dashboardHandler.Summary)
		})
	})

	return r
}

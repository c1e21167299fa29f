package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prepmatch/backend/api/http/handlers"
)

// Handlers bundles every HTTP handler the router wires.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Health         *handlers.HealthHandler
	Profile        *handlers.ProfileHandler
	JobPosting     *handlers.JobPostingHandler
	Application    *handlers.ApplicationHandler
	Matching       *handlers.MatchingHandler
	Interview      *handlers.InterviewHandler
	Recommendation *handlers.RecommendationHandler
	Subscription   *handlers.SubscriptionHandler
	Favorite       *handlers.FavoriteHandler
	SearchTemplate *handlers.SearchTemplateHandler
	Reputation     *handlers.ReputationHandler
	Portfolio      *handlers.PortfolioHandler
}

// Register wires all HTTP routes onto given Fiber app. authMW guards every
// route registered after the public block.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	// Everything below requires a valid token.
	api.Use(authMW)

	api.Get("/profile", h.Profile.Me)
	api.Put("/profile", h.Profile.Update)

	p := api.Group("/postings")
	p.Post("/", h.JobPosting.Create)
	p.Get("/", h.JobPosting.List)
	p.Get("/:id", h.JobPosting.Get)
	p.Put("/:id/active", h.JobPosting.SetActive)
	p.Delete("/:id", h.JobPosting.Delete)

	api.Post("/applications", h.Application.Apply)
	api.Get("/applications", h.Application.List)

	m := api.Group("/matching")
	m.Get("/cache", h.Matching.Cache)
	m.Post("/generate", h.Matching.Generate)

	// The technical-test catalogue keeps its historical path.
	api.Get("/interviews", h.Interview.ListQuizzes)
	api.Get("/interviews/completion", h.Interview.Completion)
	api.Post("/interviews/meetings", h.Interview.ScheduleMeeting)
	api.Get("/interviews/meetings", h.Interview.ListMeetings)
	api.Post("/quizzes/:id/results", h.Interview.SubmitResult)

	api.Get("/recommendations", h.Recommendation.List)
	api.Post("/recommendations/:id/viewed", h.Recommendation.MarkViewed)

	api.Post("/subscriptions", h.Subscription.Subscribe)
	api.Get("/subscriptions/current", h.Subscription.Current)

	api.Post("/favorites/toggle", h.Favorite.Toggle)
	api.Get("/favorites", h.Favorite.List)

	st := api.Group("/search-templates")
	st.Post("/", h.SearchTemplate.Create)
	st.Get("/", h.SearchTemplate.List)
	st.Delete("/:id", h.SearchTemplate.Delete)

	api.Get("/reputation/me", h.Reputation.Me)
	api.Get("/reputation/leaderboard", h.Reputation.Leaderboard)

	api.Put("/portfolios", h.Portfolio.Save)
	api.Get("/portfolios", h.Portfolio.List)
}

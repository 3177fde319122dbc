package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/voting-service/internal/api/http/handlers"
	"github.com/spec-kit/voting-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	Voters         *handlers.VotersHandler
	Candidates     *handlers.CandidatesHandler
	Votes          *handlers.VotesHandler
	Elections      *handlers.ElectionsHandler
	AuthMiddleware *auth.AuthMiddleware
	AllowedOrigins []string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders: "Content-Type,Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Secure Voting API is Running!")
	})
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	users := app.Group("/users")
	users.Post("/login", cfg.Users.Login)
	users.Post("/verify", cfg.Users.Verify)

	app.Post("/admin/login", cfg.Admin.Login)

	app.Get("/votes/results", cfg.Votes.Results)
	app.Get("/candidates", cfg.Candidates.List)
	app.Get("/elections", cfg.Elections.List)
	app.Get("/elections/:id", cfg.Elections.Get)

	// Guards are attached per route: a prefix-less group would register its
	// middleware globally and shadow every route mounted after it.
	authn := cfg.AuthMiddleware.Handle
	voterOnly := auth.RequireVoter()
	adminOnly := auth.RequireAdmin()

	app.Post("/votes/vote", authn, voterOnly, cfg.Votes.Vote)

	app.Post("/candidates/add", authn, adminOnly, cfg.Candidates.Add)
	app.Delete("/candidates/:id", authn, adminOnly, cfg.Candidates.Remove)
	app.Post("/voters/register", authn, adminOnly, cfg.Voters.Register)
	app.Get("/voters", authn, adminOnly, cfg.Voters.List)
	app.Delete("/voters/:id", authn, adminOnly, cfg.Voters.Remove)
	app.Post("/elections", authn, adminOnly, cfg.Elections.Create)
	app.Post("/votes/reset", authn, adminOnly, cfg.Votes.Reset)
}

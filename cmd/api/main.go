package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/voting-service/internal/api/http"
	"github.com/spec-kit/voting-service/internal/api/http/handlers"
	"github.com/spec-kit/voting-service/internal/auth"
	"github.com/spec-kit/voting-service/internal/biometric"
	"github.com/spec-kit/voting-service/internal/config"
	"github.com/spec-kit/voting-service/internal/events"
	"github.com/spec-kit/voting-service/internal/observability"
	"github.com/spec-kit/voting-service/internal/persistence"
	"github.com/spec-kit/voting-service/internal/repository"
	"github.com/spec-kit/voting-service/internal/repository/memory"
	"github.com/spec-kit/voting-service/internal/service"
	"github.com/spec-kit/voting-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		voterRepo     repository.VoterRepository
		electionRepo  repository.ElectionRepository
		candidateRepo repository.CandidateRepository
		voteRepo      repository.VoteRepository
		adminRepo     repository.AdminRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		candidateRepo = repository.NewCandidateRepository(pool)
		voterRepo = repository.NewVoterRepository(pool)
		electionRepo = repository.NewElectionRepository(pool, candidateRepo)
		voteRepo = repository.NewVoteRepository(pool)
		adminRepo = repository.NewAdminRepository(pool)
	} else {
		repos := memory.New()
		voterRepo = repos.Voters
		electionRepo = repos.Elections
		candidateRepo = repos.Candidates
		voteRepo = repos.Votes
		adminRepo = repos.Admins
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	tallyCache := persistence.NewRedisTallyCache(redis, cfg.Redis.TallyTTL(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		VoterRepo: voterRepo,
		AdminRepo: adminRepo,
	})
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to provision admin account", zap.Error(err))
	}

	matcher := biometric.NewMatcher(cfg.Biometric.MatchThreshold)
	verificationService := service.NewVerificationService(voterRepo, matcher, authService.TokenManager())
	votingService := service.NewVotingService(service.VotingDependencies{
		VoterRepo:     voterRepo,
		ElectionRepo:  electionRepo,
		CandidateRepo: candidateRepo,
		VoteRepo:      voteRepo,
		Dispatcher:    dispatcher,
		Cache:         tallyCache,
	})
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		VoterRepo:     voterRepo,
		ElectionRepo:  electionRepo,
		CandidateRepo: candidateRepo,
		VoteRepo:      voteRepo,
		Dispatcher:    dispatcher,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), voterRepo, adminRepo)

	worker.StartAuditWorker(dispatcher, tallyCache, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService, verificationService, metrics),
		Admin:          handlers.NewAdminHandler(authService),
		Voters:         handlers.NewVotersHandler(adminService),
		Candidates:     handlers.NewCandidatesHandler(adminService),
		Votes:          handlers.NewVotesHandler(votingService, adminService, metrics),
		Elections:      handlers.NewElectionsHandler(adminService),
		AuthMiddleware: authMiddleware,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

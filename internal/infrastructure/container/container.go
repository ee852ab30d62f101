// Package container wires configuration, stores, agents, usecases and the
// HTTP server together.
package container

import (
	"fmt"
	"time"

	"github.com/doublemate/doublemate-backend/internal/config"
	httpdelivery "github.com/doublemate/doublemate-backend/internal/delivery/http"
	"github.com/doublemate/doublemate-backend/internal/delivery/http/handler"
	"github.com/doublemate/doublemate-backend/internal/delivery/http/middleware"
	"github.com/doublemate/doublemate-backend/internal/infrastructure/agent"
	"github.com/doublemate/doublemate-backend/internal/infrastructure/database"
	"github.com/doublemate/doublemate-backend/internal/infrastructure/logger"
	"github.com/doublemate/doublemate-backend/internal/infrastructure/server"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/doublemate/doublemate-backend/internal/repository/memory"
	"github.com/doublemate/doublemate-backend/internal/repository/postgres"
	"github.com/doublemate/doublemate-backend/internal/repository/redisstore"
	"github.com/doublemate/doublemate-backend/internal/usecase/auth"
	"github.com/doublemate/doublemate-backend/internal/usecase/chat"
	"github.com/doublemate/doublemate-backend/internal/usecase/match"
	"github.com/doublemate/doublemate-backend/internal/usecase/onboarding"
	"github.com/doublemate/doublemate-backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Agent  *agent.GeminiAgent
	Server *server.Server
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New("doublemate-backend", cfg.Logging.Level)

	c := &Container{Config: cfg, Log: log}

	var (
		profileRepo repository.ProfileRepository
		matchRepo   repository.MatchRepository
		messageRepo repository.MessageRepository
		draftStore  repository.DraftStore
	)

	switch cfg.Storage.Type {
	case config.StorageTypePostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db

		redisClient, err := database.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = redisClient

		profileRepo = postgres.NewProfileRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		messageRepo = postgres.NewMessageRepository(db)
		draftStore = redisstore.NewDraftStore(redisClient)

	case config.StorageTypeMemory:
		memProfiles := memory.NewProfileRepository()
		profileRepo = memProfiles
		matchRepo = memory.NewMatchRepository(memProfiles)
		messageRepo = memory.NewMessageRepository()
		draftStore = memory.NewDraftStore()
		log.Warn().Msg("using in-memory storage; data is lost on restart")

	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}

	geminiAgent, err := agent.NewGeminiAgent(cfg.Agent.GeminiAPIKey, cfg.Agent.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize agent client: %w", err)
	}
	c.Agent = geminiAgent

	// Use cases
	authUseCase := auth.NewAuthUseCase(profileRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	profileUseCase := profile.NewProfileUseCase(profileRepo)
	onboardingUseCase := onboarding.NewOnboardingUseCase(profileRepo, draftStore, geminiAgent, log)
	matchUseCase := match.NewMatchUseCase(profileRepo, matchRepo, geminiAgent, log)
	chatUseCase := chat.NewChatUseCase(matchRepo, messageRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)

	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	router := httpdelivery.NewRouter(
		authHandler,
		profileHandler,
		onboardingHandler,
		matchHandler,
		chatHandler,
		authMiddleware,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.Agent != nil {
		c.Agent.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error().Err(err).Msg("error closing redis")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

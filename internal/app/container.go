package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/you/pomodorosvc/domain"
	"github.com/you/pomodorosvc/internal/config"
	httpx "github.com/you/pomodorosvc/internal/http"
	"github.com/you/pomodorosvc/internal/http/handlers"
	"github.com/you/pomodorosvc/internal/http/middleware"
	"github.com/you/pomodorosvc/internal/infrastructure/auth"
	"github.com/you/pomodorosvc/internal/infrastructure/database"
	"github.com/you/pomodorosvc/internal/infrastructure/logging"
	"github.com/you/pomodorosvc/internal/infrastructure/repositories"
	"github.com/you/pomodorosvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger zerolog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo      domain.UserRepository
	SettingsRepo  domain.SettingsRepository
	SettingsCache domain.SettingsCache
	Denylist      domain.TokenDenylist

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	AuditLogger domain.AuditLogger
	AuthSvc     domain.AuthService
	SettingsSvc domain.SettingsService
	PolicySvc   domain.PolicyService

	Router *gin.Engine
}

// NewContainer connects to Postgres and Redis and wires every dependency
func NewContainer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c, err := NewContainerWithConnections(cfg, logger, db, rdb.Client)
	if err != nil {
		_ = closeConnections(db, rdb.Client)
		return nil, err
	}
	return c, nil
}

// NewContainerWithConnections wires every dependency on top of open connections
func NewContainerWithConnections(cfg *config.Config, logger zerolog.Logger, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		RedisClient: rdb,
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	c.initRepositories()

	if err := c.initServices(); err != nil {
		return nil, err
	}

	c.initRouter()
	return c, nil
}

func (c *Container) initRepositories() {
	c.PasswordSvc = auth.NewPasswordService()
	c.UserRepo = repositories.NewUserRepository(c.DB, c.PasswordSvc, c.Config.AdminEmails)
	c.SettingsRepo = repositories.NewSettingsRepository(c.DB)
	c.SettingsCache = repositories.NewSettingsCache(c.RedisClient, c.Config.SettingsCacheTTL)
	c.Denylist = repositories.NewTokenDenylist(c.RedisClient)
}

func (c *Container) initServices() error {
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.AuditLogger = logging.NewAuditLogger(c.Logger)

	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to initialize casbin: %w", err)
	}
	c.PolicySvc = services.NewPolicyService(cas.E)

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.Denylist, c.AuditLogger)
	c.SettingsSvc = services.NewSettingsService(c.SettingsRepo, c.SettingsCache, c.AuditLogger, c.Logger)
	return nil
}

func (c *Container) initRouter() {
	gin.SetMode(c.Config.GinMode)

	c.Router = httpx.BuildRouter(
		c.Logger,
		handlers.NewAuthHandlers(c.AuthSvc, c.SettingsSvc),
		handlers.NewSettingsHandlers(c.SettingsSvc),
		handlers.NewPolicyHandlers(c.PolicySvc),
		middleware.NewAuthMW(c.TokenSvc),
		middleware.NewCasbinMW(c.PolicySvc),
	)
}

// Close closes all connections
func (c *Container) Close() error {
	return closeConnections(c.DB, c.RedisClient)
}

func closeConnections(db *gorm.DB, rdb *redis.Client) error {
	if rdb != nil {
		_ = rdb.Close()
	}
	if db != nil {
		return database.Close(db)
	}
	return nil
}

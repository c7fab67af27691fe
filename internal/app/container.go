package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/SebastianBuritica/logistics-ai/domain"
	"github.com/SebastianBuritica/logistics-ai/internal/config"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/auth"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/database"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/provider"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/repositories"
	"github.com/SebastianBuritica/logistics-ai/internal/infrastructure/storage"
	"github.com/SebastianBuritica/logistics-ai/internal/navigation"
	"github.com/SebastianBuritica/logistics-ai/internal/services"
	"github.com/SebastianBuritica/logistics-ai/internal/session"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	RedisClient *redis.Client
	Provider    *provider.Client
	Storage     *storage.Client

	// Repositories
	StateRepo    domain.StateRepository
	RedirectRepo domain.RedirectRepository

	// Services
	PermissionSvc domain.PermissionService
	TokenSvc      domain.TokenIntrospector
	Store         *session.Store
	Orchestrator  *navigation.Orchestrator
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	container.initRedis()
	container.initProvider()
	container.initRepositories()
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initProvider() {
	c.Provider = provider.NewClient(c.Config.ProviderURL, c.Config.ProviderAnonKey, c.Config.ProviderTimeout)
	c.Storage = storage.NewClient(c.Config.ProviderURL, c.Config.ProviderAnonKey, c.Config.ProviderTimeout)
}

func (c *Container) initRepositories() {
	c.StateRepo = repositories.NewStateRepository(c.RedisClient, c.Config.StateNamespace, c.Config.SnapshotTTL)
	c.RedirectRepo = repositories.NewRedirectRepository(c.RedisClient, c.Config.StateNamespace, c.Config.RedirectTTL)
}

func (c *Container) initServices() error {
	cas, err := auth.NewCasbinService()
	if err != nil {
		return err
	}
	c.PermissionSvc, err = services.NewPermissionService(cas.E)
	if err != nil {
		return err
	}

	c.TokenSvc = auth.NewSessionTokenService()

	c.Store = session.New(c.Provider, c.Storage, c.StateRepo, session.Options{
		Origin:       c.Config.Origin,
		AvatarBucket: c.Config.AvatarBucket,
	})
	c.Orchestrator = navigation.NewOrchestrator(c.Store, c.RedirectRepo)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Store != nil {
		c.Store.Close()
	}
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}

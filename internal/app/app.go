package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastianBuritica/logistics-ai/internal/config"
	httpx "github.com/SebastianBuritica/logistics-ai/internal/http"
	"github.com/SebastianBuritica/logistics-ai/internal/http/handlers"
	"github.com/SebastianBuritica/logistics-ai/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// The consumer must run before Initialize so the startup event is applied.
	container.Store.Start()
	container.Store.Initialize(context.Background())

	authH := handlers.NewAuthHandlers(container.Store, container.Orchestrator, container.PermissionSvc, container.TokenSvc)
	guardMW := middleware.NewGuardMW(container.Store, container.Orchestrator)

	r := httpx.BuildRouter(authH, guardMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

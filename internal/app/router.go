package app

import (
	"github.com/gin-gonic/gin"

	server "github.com/yungbote/regula-backend/internal/http"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return server.NewRouter(server.RouterConfig{
		Log:                log,
		ServiceName:        serviceName,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		StrategyHandler:    handlers.Strategy,
		GeneralPlanHandler: handlers.GeneralPlan,
		SubPlanHandler:     handlers.SubPlan,
		ReflectionHandler:  handlers.Reflection,
		DashboardHandler:   handlers.Dashboard,
	})
}

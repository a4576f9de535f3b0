package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/regula-backend/internal/http/handlers"
	httpMW "github.com/yungbote/regula-backend/internal/http/middleware"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	StrategyHandler    *httpH.StrategyHandler
	GeneralPlanHandler *httpH.GeneralPlanHandler
	SubPlanHandler     *httpH.SubPlanHandler
	ReflectionHandler  *httpH.ReflectionHandler
	DashboardHandler   *httpH.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	regula := r.Group("/api/regula")
	if cfg.AuthMiddleware != nil {
		regula.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		if cfg.StrategyHandler != nil {
			regula.GET("/strategies", cfg.StrategyHandler.ListStrategies)
		}

		// General plan
		if cfg.GeneralPlanHandler != nil {
			regula.GET("/general-plan", cfg.GeneralPlanHandler.GetGeneralPlan)
			regula.POST("/general-plan", cfg.GeneralPlanHandler.EnsureGeneralPlan)
			regula.PATCH("/general-plan", cfg.GeneralPlanHandler.UpdateGeneralPlan)
		}

		// Sub-plans
		if cfg.SubPlanHandler != nil {
			regula.GET("/sub-plans", cfg.SubPlanHandler.ListSubPlans)
			regula.POST("/sub-plans", cfg.SubPlanHandler.CreateSubPlan)
			regula.GET("/sub-plans/:id", cfg.SubPlanHandler.GetSubPlan)
			regula.PATCH("/sub-plans/:id", cfg.SubPlanHandler.UpdateSubPlan)
			regula.DELETE("/sub-plans/:id", cfg.SubPlanHandler.DeleteSubPlan)
			regula.POST("/sub-plans/:id/edit", cfg.SubPlanHandler.EditSubPlan)
			regula.POST("/sub-plans/:id/complete", cfg.SubPlanHandler.CompleteSubPlan)
		}

		// Reflections
		if cfg.ReflectionHandler != nil {
			regula.GET("/sub-plans/:id/reflections", cfg.ReflectionHandler.ListForSubPlan)
			regula.POST("/sub-plans/:id/reflections", cfg.ReflectionHandler.CreateReflection)
			regula.GET("/reflections", cfg.ReflectionHandler.ListForUser)
			regula.PATCH("/reflections/:id", cfg.ReflectionHandler.UpdateReflection)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			regula.GET("/dashboard", cfg.DashboardHandler.GetOverview)
		}
	}

	return r
}

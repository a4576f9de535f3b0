package app

import (
	httpH "github.com/yungbote/regula-backend/internal/http/handlers"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Strategy    *httpH.StrategyHandler
	GeneralPlan *httpH.GeneralPlanHandler
	SubPlan     *httpH.SubPlanHandler
	Reflection  *httpH.ReflectionHandler
	Dashboard   *httpH.DashboardHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Strategy:    httpH.NewStrategyHandler(),
		GeneralPlan: httpH.NewGeneralPlanHandler(services.Plans),
		SubPlan:     httpH.NewSubPlanHandler(services.Plans),
		Reflection:  httpH.NewReflectionHandler(services.Plans),
		Dashboard:   httpH.NewDashboardHandler(services.Dashboard),
	}
}

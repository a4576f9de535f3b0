package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/pkg/logger"
	"github.com/yungbote/regula-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Plans     services.PlanService
	Dashboard services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")
	loc, err := cfg.Location()
	if err != nil {
		return Services{}, err
	}
	return Services{
		Auth:      services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL()),
		Plans:     services.NewPlanService(db, log, repos.GeneralPlan, repos.SubPlan, repos.Reflection),
		Dashboard: services.NewDashboardService(log, repos.SubPlan, repos.Reflection, clients.Analytics, loc),
	}, nil
}

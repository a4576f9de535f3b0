package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/data/repos"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type Repos struct {
	GeneralPlan repos.GeneralPlanRepo
	SubPlan     repos.SubPlanRepo
	Reflection  repos.ReflectionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		GeneralPlan: repos.NewGeneralPlanRepo(db, log),
		SubPlan:     repos.NewSubPlanRepo(db, log),
		Reflection:  repos.NewReflectionRepo(db, log),
	}
}

package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/data/repos/regula"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type GeneralPlanRepo = regula.GeneralPlanRepo
type SubPlanRepo = regula.SubPlanRepo
type ReflectionRepo = regula.ReflectionRepo

func NewGeneralPlanRepo(db *gorm.DB, baseLog *logger.Logger) GeneralPlanRepo {
	return regula.NewGeneralPlanRepo(db, baseLog)
}
func NewSubPlanRepo(db *gorm.DB, baseLog *logger.Logger) SubPlanRepo {
	return regula.NewSubPlanRepo(db, baseLog)
}
func NewReflectionRepo(db *gorm.DB, baseLog *logger.Logger) ReflectionRepo {
	return regula.NewReflectionRepo(db, baseLog)
}

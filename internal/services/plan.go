package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/data/repos"
	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/modules/regula/strategy"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

const DefaultGeneralPlanName = "General Plan"

type GeneralPlanPatch struct {
	Name      OptionalString `json:"name"`
	GradeGoal OptionalString `json:"gradeGoal"`
}

// SubPlanInput is the create payload produced by the plan wizard. Status
// defaults to Active.
type SubPlanInput struct {
	Name               string          `json:"name"`
	Topic              string          `json:"topic"`
	Mastery            int             `json:"mastery"`
	Status             string          `json:"status"`
	SelectedDays       []string        `json:"selectedDays"`
	SelectedStrategies []string        `json:"selectedStrategies"`
	CustomStrategies   json.RawMessage `json:"customStrategies"`
	HoursPerDay        int             `json:"hoursPerDay"`
}

// SubPlanPatch is a partial sub-plan update. Members sent as null are left
// unchanged.
type SubPlanPatch struct {
	Name               OptionalString  `json:"name"`
	Topic              OptionalString  `json:"topic"`
	Mastery            OptionalInt     `json:"mastery"`
	Status             OptionalString  `json:"status"`
	SelectedDays       OptionalStrings `json:"selectedDays"`
	SelectedStrategies OptionalStrings `json:"selectedStrategies"`
	CustomStrategies   OptionalJSON    `json:"customStrategies"`
	HoursPerDay        OptionalInt     `json:"hoursPerDay"`
}

type SubPlanDetail struct {
	SubPlan     *types.SubPlan      `json:"subPlan"`
	Strategies  []strategy.Strategy `json:"strategies"`
	Reflections []*types.Reflection `json:"reflections"`
}

type EditResult struct {
	SubPlan      *types.SubPlan    `json:"subPlan"`
	Reflection   *types.Reflection `json:"reflection"`
	MasteryDelta int               `json:"masteryDelta"`
}

type CompleteResult struct {
	SubPlan    *types.SubPlan    `json:"subPlan"`
	Reflection *types.Reflection `json:"reflection"`
}

// PlanService owns every read and write of general plans, sub-plans and
// reflections. Each call takes the authenticated user explicitly and returns
// the entity as stored after the call.
type PlanService interface {
	EnsureGeneralPlan(dbc dbctx.Context, userID uuid.UUID, name, gradeGoal string) (*types.GeneralPlan, error)
	GetGeneralPlan(dbc dbctx.Context, userID uuid.UUID) (*types.GeneralPlan, error)
	UpdateGeneralPlan(dbc dbctx.Context, userID uuid.UUID, patch GeneralPlanPatch) (int64, error)

	CreateSubPlan(dbc dbctx.Context, userID uuid.UUID, in SubPlanInput) (*types.SubPlan, error)
	ListSubPlans(dbc dbctx.Context, userID uuid.UUID) ([]*types.SubPlan, error)
	GetSubPlanDetail(dbc dbctx.Context, userID, subPlanID uuid.UUID) (*SubPlanDetail, error)
	UpdateSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID, patch SubPlanPatch) (*types.SubPlan, error)
	DeleteSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID) error
	EditSubPlanWithReflection(dbc dbctx.Context, userID, subPlanID uuid.UUID, patch SubPlanPatch, in types.ReflectionInput) (*EditResult, error)
	CompleteSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID, in types.ReflectionInput) (*CompleteResult, error)

	CreateReflection(dbc dbctx.Context, userID, subPlanID uuid.UUID, in types.ReflectionInput) (*types.Reflection, error)
	UpdateReflection(dbc dbctx.Context, userID, reflectionID uuid.UUID, patch types.ReflectionPatch) (*types.Reflection, error)
	ListReflectionsForSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID) ([]*types.Reflection, error)
	ListAllReflectionsForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Reflection, error)
}

type planService struct {
	db           *gorm.DB
	log          *logger.Logger
	generalPlans repos.GeneralPlanRepo
	subPlans     repos.SubPlanRepo
	reflections  repos.ReflectionRepo
}

func NewPlanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	generalPlans repos.GeneralPlanRepo,
	subPlans repos.SubPlanRepo,
	reflections repos.ReflectionRepo,
) PlanService {
	return &planService{
		db:           db,
		log:          baseLog.With("service", "PlanService"),
		generalPlans: generalPlans,
		subPlans:     subPlans,
		reflections:  reflections,
	}
}

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.ErrUnauthorized
	}
	return nil
}

// ownedSubPlan loads subPlanID and checks it belongs to userID.
func (s *planService) ownedSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID) (*types.SubPlan, error) {
	sp, err := s.subPlans.GetByID(dbc, subPlanID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, apperr.NotFound("sub-plan", subPlanID)
	}
	if !types.IsOwner(sp, userID) {
		return nil, apperr.Forbidden("sub-plan", subPlanID)
	}
	return sp, nil
}

package services

import (
	"strings"

	"github.com/google/uuid"

	dbpkg "github.com/yungbote/regula-backend/internal/data/db"
	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/modules/regula/validation"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
)

// EnsureGeneralPlan returns the user's plan, creating it from name and
// gradeGoal when absent. An existing plan is returned unchanged. The unique
// index on user_id settles concurrent first calls; the loser re-reads the
// winner's row.
func (s *planService) EnsureGeneralPlan(dbc dbctx.Context, userID uuid.UUID, name, gradeGoal string) (*types.GeneralPlan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	plan, err := inTx(s.db, s.log, dbc, "EnsureGeneralPlan", func(inner dbctx.Context) (*types.GeneralPlan, error) {
		existing, err := s.generalPlans.GetByUserID(inner, userID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}

		name = strings.TrimSpace(name)
		if name == "" {
			name = DefaultGeneralPlanName
		}
		if err := validation.ValidateGeneralPlanFields(types.GeneralPlanFields{Name: &name, GradeGoal: &gradeGoal}); err != nil {
			return nil, err
		}
		grade, _ := types.ParseGradeGoal(gradeGoal)

		row := &types.GeneralPlan{UserID: userID, Name: name, GradeGoal: grade}
		created, err := s.generalPlans.Ensure(inner, row)
		if err != nil {
			return nil, err
		}
		if created {
			return row, nil
		}
		winner, err := s.generalPlans.GetByUserID(inner, userID)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, apperr.Conflict("general plan insert was skipped but no plan exists")
		}
		return winner, nil
	})
	if err == nil || !dbpkg.IsUniqueViolation(err) {
		return plan, err
	}
	if dbc.Tx != nil {
		return nil, apperr.Conflict("general plan already exists for user")
	}

	// A driver that reports the race as an error instead of skipping the
	// insert lands here; the transaction is gone, so re-read outside it.
	existing, getErr := s.generalPlans.GetByUserID(dbctx.Context{Ctx: dbc.Ctx}, userID)
	if getErr != nil {
		return nil, getErr
	}
	if existing == nil {
		return nil, apperr.Conflict("general plan already exists for user")
	}
	return existing, nil
}

func (s *planService) GetGeneralPlan(dbc dbctx.Context, userID uuid.UUID) (*types.GeneralPlan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	plan, err := s.generalPlans.GetByUserID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFound("general plan for user", userID)
	}
	return plan, nil
}

// UpdateGeneralPlan applies the set members of patch to every plan the user
// owns and returns the number of rows updated.
func (s *planService) UpdateGeneralPlan(dbc dbctx.Context, userID uuid.UUID, patch GeneralPlanPatch) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}

	fields := types.GeneralPlanFields{}
	updates := map[string]any{}
	if patch.Name.Present() {
		name := *patch.Name.Value
		fields.Name = &name
		updates["name"] = name
	}
	if patch.GradeGoal.Present() {
		raw := *patch.GradeGoal.Value
		fields.GradeGoal = &raw
		grade, _ := types.ParseGradeGoal(raw)
		updates["grade_goal"] = grade
	}
	if err := validation.ValidateGeneralPlanFields(fields); err != nil {
		return 0, err
	}
	if len(updates) == 0 {
		return 0, nil
	}

	return inTx(s.db, s.log, dbc, "UpdateGeneralPlan", func(inner dbctx.Context) (int64, error) {
		return s.generalPlans.UpdateFieldsByUserID(inner, userID, updates)
	})
}

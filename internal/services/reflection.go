package services

import (
	"github.com/google/uuid"

	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/modules/regula/validation"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
)

func (s *planService) CreateReflection(dbc dbctx.Context, userID, subPlanID uuid.UUID, in types.ReflectionInput) (*types.Reflection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return inTx(s.db, s.log, dbc, "CreateReflection", func(inner dbctx.Context) (*types.Reflection, error) {
		sp, err := s.ownedSubPlan(inner, userID, subPlanID)
		if err != nil {
			return nil, err
		}
		if err := validation.ValidateReflection(in); err != nil {
			return nil, err
		}
		created, err := s.reflections.Create(inner, []*types.Reflection{in.ToReflection(sp.ID)})
		if err != nil {
			return nil, err
		}
		return created[0], nil
	})
}

// UpdateReflection applies patch after checking ownership through the parent
// sub-plan. The required-field rules of CreateReflection are not re-run.
func (s *planService) UpdateReflection(dbc dbctx.Context, userID, reflectionID uuid.UUID, patch types.ReflectionPatch) (*types.Reflection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return inTx(s.db, s.log, dbc, "UpdateReflection", func(inner dbctx.Context) (*types.Reflection, error) {
		current, err := s.reflections.GetByID(inner, reflectionID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, apperr.NotFound("reflection", reflectionID)
		}
		if _, err := s.ownedSubPlan(inner, userID, current.SubPlanID); err != nil {
			return nil, err
		}
		updates := patch.Updates()
		if len(updates) == 0 {
			return current, nil
		}
		if err := s.reflections.UpdateFields(inner, current.ID, updates); err != nil {
			return nil, err
		}
		updated, err := s.reflections.GetByID(inner, current.ID)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, apperr.NotFound("reflection", reflectionID)
		}
		return updated, nil
	})
}

func (s *planService) ListReflectionsForSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID) ([]*types.Reflection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	sp, err := s.ownedSubPlan(dbc, userID, subPlanID)
	if err != nil {
		return nil, err
	}
	return s.reflections.GetBySubPlanID(dbc, sp.ID)
}

func (s *planService) ListAllReflectionsForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Reflection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.reflections.GetByUserID(dbc, userID)
}

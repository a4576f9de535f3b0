package services

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/modules/regula/strategy"
	"github.com/yungbote/regula-backend/internal/modules/regula/validation"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
)

func (s *planService) CreateSubPlan(dbc dbctx.Context, userID uuid.UUID, in SubPlanInput) (*types.SubPlan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	topic := strings.TrimSpace(in.Topic)
	if name == "" {
		name = topic
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = types.StatusActive
	}
	days := normalizeDays(in.SelectedDays)

	if err := validation.ValidateSubPlanFields(types.SubPlanFields{
		Name:         &name,
		Mastery:      &in.Mastery,
		HoursPerDay:  &in.HoursPerDay,
		Status:       &status,
		SelectedDays: &days,
	}); err != nil {
		return nil, err
	}

	row := &types.SubPlan{
		UserID:             userID,
		Name:               name,
		Topic:              topic,
		Mastery:            in.Mastery,
		Status:             status,
		SelectedDays:       days,
		SelectedStrategies: strategy.NormalizeIDs(in.SelectedStrategies),
		CustomStrategies:   datatypes.NewJSONType(customPayload(in.CustomStrategies)),
		HoursPerDay:        in.HoursPerDay,
	}
	return inTx(s.db, s.log, dbc, "CreateSubPlan", func(inner dbctx.Context) (*types.SubPlan, error) {
		if _, err := s.subPlans.Create(inner, []*types.SubPlan{row}); err != nil {
			return nil, err
		}
		return row, nil
	})
}

func (s *planService) ListSubPlans(dbc dbctx.Context, userID uuid.UUID) ([]*types.SubPlan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.subPlans.GetByUserID(dbc, userID)
}

func (s *planService) GetSubPlanDetail(dbc dbctx.Context, userID, subPlanID uuid.UUID) (*SubPlanDetail, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	sp, err := s.ownedSubPlan(dbc, userID, subPlanID)
	if err != nil {
		return nil, err
	}
	refs, err := s.reflections.GetBySubPlanID(dbc, sp.ID)
	if err != nil {
		return nil, err
	}
	return &SubPlanDetail{
		SubPlan:     sp,
		Strategies:  sp.ResolvedStrategies(),
		Reflections: refs,
	}, nil
}

func (s *planService) UpdateSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID, patch SubPlanPatch) (*types.SubPlan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return inTx(s.db, s.log, dbc, "UpdateSubPlan", func(inner dbctx.Context) (*types.SubPlan, error) {
		current, err := s.ownedSubPlan(inner, userID, subPlanID)
		if err != nil {
			return nil, err
		}
		updates, err := subPlanUpdates(current, patch)
		if err != nil {
			return nil, err
		}
		return s.applySubPlanUpdates(inner, current, updates)
	})
}

// DeleteSubPlan removes the sub-plan's reflections before the sub-plan row.
func (s *planService) DeleteSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	_, err := inTx(s.db, s.log, dbc, "DeleteSubPlan", func(inner dbctx.Context) (struct{}, error) {
		sp, err := s.ownedSubPlan(inner, userID, subPlanID)
		if err != nil {
			return struct{}{}, err
		}
		if err := s.reflections.DeleteBySubPlanIDs(inner, []uuid.UUID{sp.ID}); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.subPlans.DeleteByIDs(inner, []uuid.UUID{sp.ID})
	})
	return err
}

// EditSubPlanWithReflection applies patch and records an edit reflection in
// one transaction. Both halves are validated before anything is written.
func (s *planService) EditSubPlanWithReflection(dbc dbctx.Context, userID, subPlanID uuid.UUID, patch SubPlanPatch, in types.ReflectionInput) (*EditResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	in.Type = types.ReflectionEdit
	if err := validation.ValidateReflection(in); err != nil {
		return nil, err
	}
	return inTx(s.db, s.log, dbc, "EditSubPlanWithReflection", func(inner dbctx.Context) (*EditResult, error) {
		current, err := s.ownedSubPlan(inner, userID, subPlanID)
		if err != nil {
			return nil, err
		}
		updates, err := subPlanUpdates(current, patch)
		if err != nil {
			return nil, err
		}
		before := current.Mastery
		updated, err := s.applySubPlanUpdates(inner, current, updates)
		if err != nil {
			return nil, err
		}
		created, err := s.reflections.Create(inner, []*types.Reflection{in.ToReflection(updated.ID)})
		if err != nil {
			return nil, err
		}
		return &EditResult{
			SubPlan:      updated,
			Reflection:   created[0],
			MasteryDelta: updated.Mastery - before,
		}, nil
	})
}

// CompleteSubPlan records a complete reflection and marks the plan Completed.
func (s *planService) CompleteSubPlan(dbc dbctx.Context, userID, subPlanID uuid.UUID, in types.ReflectionInput) (*CompleteResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	in.Type = types.ReflectionComplete
	if err := validation.ValidateReflection(in); err != nil {
		return nil, err
	}
	return inTx(s.db, s.log, dbc, "CompleteSubPlan", func(inner dbctx.Context) (*CompleteResult, error) {
		current, err := s.ownedSubPlan(inner, userID, subPlanID)
		if err != nil {
			return nil, err
		}
		created, err := s.reflections.Create(inner, []*types.Reflection{in.ToReflection(current.ID)})
		if err != nil {
			return nil, err
		}
		updated, err := s.applySubPlanUpdates(inner, current, map[string]any{"status": types.StatusCompleted})
		if err != nil {
			return nil, err
		}
		return &CompleteResult{SubPlan: updated, Reflection: created[0]}, nil
	})
}

func (s *planService) applySubPlanUpdates(inner dbctx.Context, current *types.SubPlan, updates map[string]any) (*types.SubPlan, error) {
	if len(updates) == 0 {
		return current, nil
	}
	if err := s.subPlans.UpdateFields(inner, current.ID, updates); err != nil {
		return nil, err
	}
	updated, err := s.subPlans.GetByID(inner, current.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("sub-plan", current.ID)
	}
	return updated, nil
}

// subPlanUpdates validates patch against current and returns the column map
// to write. Changing status checks the day set the plan would end up with.
func subPlanUpdates(current *types.SubPlan, patch SubPlanPatch) (map[string]any, error) {
	fields := types.SubPlanFields{PreviousStatus: current.Status}
	updates := map[string]any{}

	if patch.Name.Present() {
		name := *patch.Name.Value
		fields.Name = &name
		updates["name"] = name
	}
	if patch.Topic.Present() {
		updates["topic"] = *patch.Topic.Value
	}
	if patch.Mastery.Present() {
		fields.Mastery = patch.Mastery.Value
		updates["mastery"] = *patch.Mastery.Value
	}
	if patch.HoursPerDay.Present() {
		fields.HoursPerDay = patch.HoursPerDay.Value
		updates["hours_per_day"] = *patch.HoursPerDay.Value
	}

	days := []string(current.SelectedDays)
	if patch.SelectedDays.Present() {
		days = normalizeDays(*patch.SelectedDays.Value)
		fields.SelectedDays = &days
		updates["selected_days"] = datatypes.JSONSlice[string](days)
	}
	if patch.Status.Present() {
		status := *patch.Status.Value
		fields.Status = &status
		fields.SelectedDays = &days
		updates["status"] = status
	}

	if patch.SelectedStrategies.Present() {
		updates["selected_strategies"] = datatypes.JSONSlice[string](strategy.NormalizeIDs(*patch.SelectedStrategies.Value))
	}
	if patch.CustomStrategies.Present() {
		updates["custom_strategies"] = datatypes.NewJSONType(customPayload(*patch.CustomStrategies.Value))
	}

	if err := validation.ValidateSubPlanFields(fields); err != nil {
		return nil, err
	}
	return updates, nil
}

// normalizeDays trims day names and drops blanks and repeats, keeping the
// first spelling of each.
func normalizeDays(days []string) []string {
	out := make([]string, 0, len(days))
	seen := map[string]struct{}{}
	for _, d := range days {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		key := strings.ToLower(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

func customPayload(raw json.RawMessage) strategy.Payload {
	return strategy.BuildPayload(strategy.NormalizeCustomJSON(raw))
}

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/regula-backend/internal/domain"
)

func SeedGeneralPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.GeneralPlan {
	tb.Helper()
	p := &types.GeneralPlan{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "General Plan",
		GradeGoal: "A",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed general plan: %v", err)
	}
	return p
}

func SeedSubPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string, createdAt time.Time) *types.SubPlan {
	tb.Helper()
	p := &types.SubPlan{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               "Algebra",
		Topic:              "Quadratics",
		Mastery:            40,
		Status:             status,
		SelectedDays:       []string{"Monday", "Wednesday"},
		SelectedStrategies: []string{"pomodoro", "active_recall"},
		HoursPerDay:        2,
		CreatedAt:          createdAt,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed sub plan: %v", err)
	}
	return p
}

func SeedReflection(tb testing.TB, ctx context.Context, tx *gorm.DB, subPlanID uuid.UUID, kind types.ReflectionType, comment string, createdAt time.Time) *types.Reflection {
	tb.Helper()
	r := &types.Reflection{
		ID:        uuid.New(),
		SubPlanID: subPlanID,
		Type:      kind,
		Control:   3,
		Awareness: 3,
		Strengths: 3,
		Planning:  3,
		Comment:   comment,
		CreatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Omit("SubPlan").Create(r).Error; err != nil {
		tb.Fatalf("seed reflection: %v", err)
	}
	return r
}

func PtrTime(v time.Time) *time.Time { return &v }

// Day returns midnight UTC of the given date, offset by hours.
func Day(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

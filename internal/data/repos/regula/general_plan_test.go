package regula

import (
	"context"
	"testing"

	"github.com/google/uuid"

	dbpkg "github.com/yungbote/regula-backend/internal/data/db"
	"github.com/yungbote/regula-backend/internal/data/repos/testutil"
	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
)

func TestGeneralPlanRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewGeneralPlanRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	userID := uuid.New()

	if got, err := repo.GetByUserID(dbc, userID); err != nil || got != nil {
		t.Fatalf("GetByUserID (missing): got=%v err=%v", got, err)
	}

	created, err := repo.Ensure(dbc, &types.GeneralPlan{UserID: userID, Name: "General Plan", GradeGoal: "A"})
	if err != nil || !created {
		t.Fatalf("Ensure: created=%v err=%v", created, err)
	}
	created, err = repo.Ensure(dbc, &types.GeneralPlan{UserID: userID, Name: "Other", GradeGoal: "C"})
	if err != nil || created {
		t.Fatalf("Ensure (existing): created=%v err=%v", created, err)
	}

	got, err := repo.GetByUserID(dbc, userID)
	if err != nil || got == nil {
		t.Fatalf("GetByUserID: got=%v err=%v", got, err)
	}
	if got.Name != "General Plan" || got.GradeGoal != "A" {
		t.Fatalf("Ensure overwrote existing plan: %+v", got)
	}

	n, err := repo.UpdateFieldsByUserID(dbc, userID, map[string]any{"grade_goal": "B"})
	if err != nil || n != 1 {
		t.Fatalf("UpdateFieldsByUserID: n=%d err=%v", n, err)
	}
	n, err = repo.UpdateFieldsByUserID(dbc, uuid.New(), map[string]any{"grade_goal": "B"})
	if err != nil || n != 0 {
		t.Fatalf("UpdateFieldsByUserID (missing): n=%d err=%v", n, err)
	}
	if got, _ := repo.GetByUserID(dbc, userID); got == nil || got.GradeGoal != "B" {
		t.Fatalf("expected grade B after update, got %+v", got)
	}
}

func TestGeneralPlanUniquePerUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userID := uuid.New()
	testutil.SeedGeneralPlan(t, ctx, tx, userID)

	err := tx.WithContext(ctx).Create(&types.GeneralPlan{UserID: userID, Name: "dup", GradeGoal: "A"}).Error
	if !dbpkg.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation on second plan, got %v", err)
	}
}

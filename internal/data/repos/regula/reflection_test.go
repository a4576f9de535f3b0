package regula

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/regula-backend/internal/data/repos/testutil"
	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
)

func TestReflectionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewReflectionRepo(db, testutil.Logger(t))

	userID := uuid.New()
	sp := testutil.SeedSubPlan(t, ctx, tx, userID, types.StatusActive, testutil.Day(2024, 1, 1, 9))
	otherUserPlan := testutil.SeedSubPlan(t, ctx, tx, uuid.New(), types.StatusActive, testutil.Day(2024, 1, 1, 9))
	first := testutil.SeedReflection(t, ctx, tx, sp.ID, types.ReflectionEdit, "first", testutil.Day(2024, 1, 2, 9))
	testutil.SeedReflection(t, ctx, tx, otherUserPlan.ID, types.ReflectionEdit, "not mine", testutil.Day(2024, 1, 2, 9))

	created, err := repo.Create(dbc, []*types.Reflection{{
		SubPlanID:    sp.ID,
		Type:         types.ReflectionComplete,
		Alternatives: 4,
		Summary:      5,
		Diagrams:     3,
		Adaptation:   2,
		Comment:      "second",
		CreatedAt:    testutil.Day(2024, 1, 3, 9),
	}})
	if err != nil || len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: err=%v rows=%v", err, created)
	}
	second := created[0]

	got, err := repo.GetByID(dbc, second.ID)
	if err != nil || got == nil || got.Summary != 5 || got.Control != 0 {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	list, err := repo.GetBySubPlanID(dbc, sp.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("GetBySubPlanID: err=%v len=%d", err, len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("GetBySubPlanID: expected newest first")
	}

	mine, err := repo.GetByUserID(dbc, userID)
	if err != nil || len(mine) != 2 {
		t.Fatalf("GetByUserID: err=%v len=%d", err, len(mine))
	}
	for _, r := range mine {
		if r.SubPlanID != sp.ID {
			t.Fatalf("GetByUserID returned another user's reflection: %+v", r)
		}
	}

	if err := repo.UpdateFields(dbc, first.ID, map[string]any{"comment": "edited", "control": 5}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, _ = repo.GetByID(dbc, first.ID)
	if got.Comment != "edited" || got.Control != 5 {
		t.Fatalf("UpdateFields not applied: %+v", got)
	}

	if err := repo.DeleteBySubPlanIDs(dbc, []uuid.UUID{sp.ID}); err != nil {
		t.Fatalf("DeleteBySubPlanIDs: %v", err)
	}
	if list, err := repo.GetBySubPlanID(dbc, sp.ID); err != nil || len(list) != 0 {
		t.Fatalf("after DeleteBySubPlanIDs: err=%v len=%d", err, len(list))
	}
	if list, err := repo.GetBySubPlanID(dbc, otherUserPlan.ID); err != nil || len(list) != 1 {
		t.Fatalf("DeleteBySubPlanIDs touched another plan: err=%v len=%d", err, len(list))
	}
}

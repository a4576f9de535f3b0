package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/regula-backend/internal/data/repos/testutil"
	types "github.com/yungbote/regula-backend/internal/domain"
	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
	"github.com/yungbote/regula-backend/internal/pkg/pointers"
)

func editInput() types.ReflectionInput {
	return types.ReflectionInput{
		Type:      types.ReflectionEdit,
		Control:   pointers.Int(3),
		Awareness: pointers.Int(4),
		Strengths: pointers.Int(2),
		Planning:  pointers.Int(5),
		Comment:   pointers.String("Flashcards helped with formulas"),
	}
}

func completeInput() types.ReflectionInput {
	return types.ReflectionInput{
		Type:         types.ReflectionComplete,
		Alternatives: pointers.Int(3),
		Summary:      pointers.Int(4),
		Diagrams:     pointers.Int(2),
		Adaptation:   pointers.Int(5),
		Comment:      pointers.String("Diagrams made the proofs stick"),
	}
}

func TestCreateReflectionValidation(t *testing.T) {
	svc, _ := newPlanService(t)
	userID := uuid.New()
	sp := mustCreateSubPlan(t, svc, userID)

	missing := editInput()
	missing.Strengths = nil
	missing.Planning = nil
	missing.Comment = nil

	outOfScale := completeInput()
	outOfScale.Summary = pointers.Int(6)
	outOfScale.Diagrams = pointers.Int(0)

	stray := editInput()
	stray.Summary = pointers.Int(99)

	cases := []struct {
		name   string
		in     types.ReflectionInput
		fields []string
	}{
		{"edit complete", editInput(), nil},
		{"complete complete", completeInput(), nil},
		{"edit missing", missing, []string{"strengths", "planning", "comment"}},
		{"complete out of scale", outOfScale, []string{"summary", "diagrams"}},
		{"edit with unrequired scale out of range", stray, []string{"summary"}},
		{"other type", types.ReflectionInput{Type: "weekly_note"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := svc.CreateReflection(bg(), userID, sp.ID, tc.in)
			if tc.fields == nil {
				if err != nil {
					t.Fatalf("CreateReflection: %v", err)
				}
				if created.SubPlanID != sp.ID || created.Type != tc.in.Type {
					t.Fatalf("unexpected reflection: %+v", created)
				}
				return
			}
			ve, ok := apperr.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if got := ve.FieldNames(); !reflect.DeepEqual(got, tc.fields) {
				t.Fatalf("fields: got %v want %v", got, tc.fields)
			}
		})
	}

	refs, err := svc.ListReflectionsForSubPlan(bg(), userID, sp.ID)
	if err != nil {
		t.Fatalf("ListReflectionsForSubPlan: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 stored reflections, got %d", len(refs))
	}
}

func TestCreateReflectionDefaultsUnusedScales(t *testing.T) {
	svc, _ := newPlanService(t)
	userID := uuid.New()
	sp := mustCreateSubPlan(t, svc, userID)

	created, err := svc.CreateReflection(bg(), userID, sp.ID, editInput())
	if err != nil {
		t.Fatalf("CreateReflection: %v", err)
	}
	if created.Alternatives != 0 || created.Summary != 0 || created.Diagrams != 0 || created.Adaptation != 0 {
		t.Fatalf("expected unused scales to be 0, got %+v", created)
	}
	if created.Control != 3 || created.Planning != 5 {
		t.Fatalf("unexpected scales: %+v", created)
	}
}

func TestReflectionOwnership(t *testing.T) {
	svc, _ := newPlanService(t)
	owner := uuid.New()
	other := uuid.New()
	sp := mustCreateSubPlan(t, svc, owner)

	created, err := svc.CreateReflection(bg(), owner, sp.ID, editInput())
	if err != nil {
		t.Fatalf("CreateReflection: %v", err)
	}

	if _, err := svc.CreateReflection(bg(), other, sp.ID, editInput()); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("create: expected forbidden, got %v", err)
	}
	if _, err := svc.UpdateReflection(bg(), other, created.ID, types.ReflectionPatch{Control: pointers.Int(1)}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("update: expected forbidden, got %v", err)
	}
	if _, err := svc.ListReflectionsForSubPlan(bg(), other, sp.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("list: expected forbidden, got %v", err)
	}
	if _, err := svc.UpdateReflection(bg(), owner, uuid.New(), types.ReflectionPatch{Control: pointers.Int(1)}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("update missing: expected not found, got %v", err)
	}
	if _, err := svc.CreateReflection(bg(), owner, uuid.New(), editInput()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("create on missing sub-plan: expected not found, got %v", err)
	}

	all, err := svc.ListAllReflectionsForUser(bg(), other)
	if err != nil {
		t.Fatalf("ListAllReflectionsForUser: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("other user should see no reflections, got %d", len(all))
	}
}

// Updates skip the create-time rules, so out-of-scale values and a blank
// comment are stored as sent.
func TestUpdateReflectionSkipsCreateRules(t *testing.T) {
	svc, _ := newPlanService(t)
	userID := uuid.New()
	sp := mustCreateSubPlan(t, svc, userID)

	created, err := svc.CreateReflection(bg(), userID, sp.ID, editInput())
	if err != nil {
		t.Fatalf("CreateReflection: %v", err)
	}

	updated, err := svc.UpdateReflection(bg(), userID, created.ID, types.ReflectionPatch{
		Control: pointers.Int(9),
		Comment: pointers.String(""),
	})
	if err != nil {
		t.Fatalf("UpdateReflection: %v", err)
	}
	if updated.Control != 9 || updated.Comment != "" {
		t.Fatalf("expected patch to be stored as sent, got control=%d comment=%q", updated.Control, updated.Comment)
	}
	if updated.Awareness != 4 {
		t.Fatalf("unset members changed: awareness=%d", updated.Awareness)
	}

	same, err := svc.UpdateReflection(bg(), userID, created.ID, types.ReflectionPatch{})
	if err != nil {
		t.Fatalf("UpdateReflection (empty): %v", err)
	}
	if same.ID != created.ID || same.Control != 9 {
		t.Fatalf("empty patch returned %+v", same)
	}
}

func TestListReflections(t *testing.T) {
	svc, db := newPlanService(t)
	userID := uuid.New()
	ctx := bg().Ctx

	first := testutil.SeedSubPlan(t, ctx, db, userID, types.StatusActive, testutil.Day(2024, 4, 1, 8))
	second := testutil.SeedSubPlan(t, ctx, db, userID, types.StatusActive, testutil.Day(2024, 4, 2, 8))
	oldest := testutil.SeedReflection(t, ctx, db, first.ID, types.ReflectionEdit, "first pass", testutil.Day(2024, 4, 3, 10))
	newest := testutil.SeedReflection(t, ctx, db, first.ID, types.ReflectionEdit, "second pass", testutil.Day(2024, 4, 5, 10))
	middle := testutil.SeedReflection(t, ctx, db, second.ID, types.ReflectionComplete, "done", testutil.Day(2024, 4, 4, 10))

	forPlan, err := svc.ListReflectionsForSubPlan(bg(), userID, first.ID)
	if err != nil {
		t.Fatalf("ListReflectionsForSubPlan: %v", err)
	}
	if len(forPlan) != 2 || forPlan[0].ID != newest.ID || forPlan[1].ID != oldest.ID {
		t.Fatalf("unexpected sub-plan reflections: %v", forPlan)
	}

	all, err := svc.ListAllReflectionsForUser(bg(), userID)
	if err != nil {
		t.Fatalf("ListAllReflectionsForUser: %v", err)
	}
	if len(all) != 3 || all[0].ID != newest.ID || all[1].ID != middle.ID || all[2].ID != oldest.ID {
		t.Fatalf("unexpected user reflections: %v", all)
	}
}

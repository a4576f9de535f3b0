package regula

import (
	"github.com/google/uuid"

	"github.com/yungbote/regula-backend/internal/pkg/pointers"
)

// Owned is implemented by every entity that is scoped to a single user.
type Owned interface {
	OwnerID() uuid.UUID
}

// IsOwner reports whether userID owns entity. A nil entity or nil user never
// matches.
func IsOwner(entity Owned, userID uuid.UUID) bool {
	if entity == nil || userID == uuid.Nil {
		return false
	}
	owner := entity.OwnerID()
	return owner != uuid.Nil && owner == userID
}

// SubPlanFields is the field set checked before a sub-plan write. Nil members
// are absent from the write. PreviousStatus is the stored status ("" on
// create) and decides whether Status newly activates the plan.
type SubPlanFields struct {
	Name           *string   `json:"name"`
	Mastery        *int      `json:"mastery"`
	HoursPerDay    *int      `json:"hoursPerDay"`
	Status         *string   `json:"status"`
	SelectedDays   *[]string `json:"selectedDays"`
	PreviousStatus string    `json:"-"`
}

// ReflectionInput is the create payload for a reflection. Scale fields the
// type does not require default to 0 when absent.
type ReflectionInput struct {
	Type         ReflectionType `json:"type"`
	Control      *int           `json:"control"`
	Awareness    *int           `json:"awareness"`
	Strengths    *int           `json:"strengths"`
	Planning     *int           `json:"planning"`
	Alternatives *int           `json:"alternatives"`
	Summary      *int           `json:"summary"`
	Diagrams     *int           `json:"diagrams"`
	Adaptation   *int           `json:"adaptation"`
	Comment      *string        `json:"comment"`
}

// ToReflection materializes the input for subPlanID with unset scales at 0.
func (in ReflectionInput) ToReflection(subPlanID uuid.UUID) *Reflection {
	val := func(p *int) int { return pointers.Deref(p, 0) }
	return &Reflection{
		SubPlanID:    subPlanID,
		Type:         in.Type,
		Control:      val(in.Control),
		Awareness:    val(in.Awareness),
		Strengths:    val(in.Strengths),
		Planning:     val(in.Planning),
		Alternatives: val(in.Alternatives),
		Summary:      val(in.Summary),
		Diagrams:     val(in.Diagrams),
		Adaptation:   val(in.Adaptation),
		Comment:      pointers.Deref(in.Comment, ""),
	}
}

// ReflectionPatch is a partial reflection update. It is applied without the
// required-field check that ReflectionInput goes through.
type ReflectionPatch struct {
	Control      *int    `json:"control"`
	Awareness    *int    `json:"awareness"`
	Strengths    *int    `json:"strengths"`
	Planning     *int    `json:"planning"`
	Alternatives *int    `json:"alternatives"`
	Summary      *int    `json:"summary"`
	Diagrams     *int    `json:"diagrams"`
	Adaptation   *int    `json:"adaptation"`
	Comment      *string `json:"comment"`
}

// Updates returns the column map for the set members of p.
func (p ReflectionPatch) Updates() map[string]any {
	out := map[string]any{}
	add := func(col string, v *int) {
		if v != nil {
			out[col] = *v
		}
	}
	add("control", p.Control)
	add("awareness", p.Awareness)
	add("strengths", p.Strengths)
	add("planning", p.Planning)
	add("alternatives", p.Alternatives)
	add("summary", p.Summary)
	add("diagrams", p.Diagrams)
	add("adaptation", p.Adaptation)
	if p.Comment != nil {
		out["comment"] = *p.Comment
	}
	return out
}

// GeneralPlanFields is the field set checked before a general-plan write.
type GeneralPlanFields struct {
	Name      *string `json:"name"`
	GradeGoal *string `json:"gradeGoal"`
}

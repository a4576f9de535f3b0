package regula

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GradeGoal is the target grade a learner sets for the course.
type GradeGoal string

const (
	GradeA GradeGoal = "A"
	GradeB GradeGoal = "B"
	GradeC GradeGoal = "C"
	GradeD GradeGoal = "D"
	GradeE GradeGoal = "E"
	GradeF GradeGoal = "F"
)

var gradeGoals = map[GradeGoal]struct{}{
	GradeA: {}, GradeB: {}, GradeC: {}, GradeD: {}, GradeE: {}, GradeF: {},
}

// ParseGradeGoal trims and upper-cases raw and reports whether the result is a
// known grade.
func ParseGradeGoal(raw string) (GradeGoal, bool) {
	g := GradeGoal(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := gradeGoals[g]
	return g, ok
}

// GeneralPlan is the single course-level goal a user holds. The unique index
// on user_id backs the find-or-create contract.
type GeneralPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_general_plan_user" json:"userId"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	GradeGoal GradeGoal `gorm:"column:grade_goal;not null" json:"gradeGoal"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (GeneralPlan) TableName() string { return "general_plan" }

func (p *GeneralPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *GeneralPlan) OwnerID() uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return p.UserID
}

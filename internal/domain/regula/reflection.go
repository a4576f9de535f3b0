package regula

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReflectionType selects which scale fields a reflection must carry.
type ReflectionType string

const (
	ReflectionEdit     ReflectionType = "edit_reflection"
	ReflectionComplete ReflectionType = "complete_reflection"

	ScaleMin = 1
	ScaleMax = 5
)

// Reflection is a structured self-assessment attached to a SubPlan. Ownership
// is transitive through SubPlan.UserID. The SubPlan foreign key exists on
// Postgres only (see EnsureRegulaConstraints); SQLite tables carry none.
type Reflection struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SubPlanID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"subPlanId"`
	SubPlan      *SubPlan       `gorm:"constraint:OnDelete:RESTRICT;foreignKey:SubPlanID;references:ID" json:"-"`
	Type         ReflectionType `gorm:"column:type;not null" json:"type"`
	Control      int            `gorm:"column:control;not null;default:0" json:"control"`
	Awareness    int            `gorm:"column:awareness;not null;default:0" json:"awareness"`
	Strengths    int            `gorm:"column:strengths;not null;default:0" json:"strengths"`
	Planning     int            `gorm:"column:planning;not null;default:0" json:"planning"`
	Alternatives int            `gorm:"column:alternatives;not null;default:0" json:"alternatives"`
	Summary      int            `gorm:"column:summary;not null;default:0" json:"summary"`
	Diagrams     int            `gorm:"column:diagrams;not null;default:0" json:"diagrams"`
	Adaptation   int            `gorm:"column:adaptation;not null;default:0" json:"adaptation"`
	Comment      string         `gorm:"column:comment;not null;default:''" json:"comment"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Reflection) TableName() string { return "reflection" }

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

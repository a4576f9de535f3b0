package regula

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/modules/regula/strategy"
)

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"

	MasteryMin     = 0
	MasteryMax     = 100
	HoursPerDayMin = 0
	HoursPerDayMax = 24
)

// SubPlan is a topic-scoped study plan. It is owned by a user directly; there
// is no foreign key to the GeneralPlan.
type SubPlan struct {
	ID                 uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID                            `gorm:"type:uuid;not null;index" json:"userId"`
	Name               string                               `gorm:"column:name;not null" json:"name"`
	Topic              string                               `gorm:"column:topic;not null;default:''" json:"topic"`
	Mastery            int                                  `gorm:"column:mastery;not null;default:0" json:"mastery"`
	Status             string                               `gorm:"column:status;not null;index" json:"status"`
	SelectedDays       datatypes.JSONSlice[string]          `gorm:"column:selected_days" json:"selectedDays"`
	SelectedStrategies datatypes.JSONSlice[string]          `gorm:"column:selected_strategies" json:"selectedStrategies"`
	CustomStrategies   datatypes.JSONType[strategy.Payload] `gorm:"column:custom_strategies" json:"customStrategies"`
	HoursPerDay        int                                  `gorm:"column:hours_per_day;not null;default:0" json:"hoursPerDay"`
	CreatedAt          time.Time                            `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt          time.Time                            `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (SubPlan) TableName() string { return "sub_plan" }

func (p *SubPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.SelectedDays == nil {
		p.SelectedDays = datatypes.JSONSlice[string]{}
	}
	if p.SelectedStrategies == nil {
		p.SelectedStrategies = datatypes.JSONSlice[string]{}
	}
	if p.CustomStrategies.Data() == nil {
		p.CustomStrategies = datatypes.NewJSONType(strategy.Payload{})
	}
	return nil
}

func (p *SubPlan) OwnerID() uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return p.UserID
}

func (p *SubPlan) IsActive() bool {
	return p != nil && p.Status == StatusActive
}

// CustomStrategyEntries lists the plan's custom strategies in id order.
func (p *SubPlan) CustomStrategyEntries() []strategy.CustomStrategy {
	if p == nil {
		return []strategy.CustomStrategy{}
	}
	return p.CustomStrategies.Data().Entries()
}

// ResolvedStrategies resolves every selected strategy id to a display entry.
func (p *SubPlan) ResolvedStrategies() []strategy.Strategy {
	if p == nil {
		return []strategy.Strategy{}
	}
	return strategy.ResolveAll(p.SelectedStrategies, p.CustomStrategyEntries())
}

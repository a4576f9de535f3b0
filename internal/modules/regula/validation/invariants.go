package validation

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/domain/regula"
	"github.com/yungbote/regula-backend/internal/modules/regula/strategy"
)

const (
	CheckPass  = "pass"
	CheckFail  = "fail"
	CheckError = "error"

	sampleLimit = 10
)

type InvariantCheck struct {
	Name    string         `json:"name"`
	Status  string         `json:"status"`
	Count   int            `json:"count"`
	Sample  []string       `json:"sample,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type InvariantReport struct {
	Status    string           `json:"status"`
	CheckedAt time.Time        `json:"checked_at"`
	UserID    string           `json:"user_id,omitempty"`
	Checks    []InvariantCheck `json:"checks"`
}

// Failed reports whether any check failed or errored.
func (r InvariantReport) Failed() bool {
	return r.Status == CheckFail
}

type invariantFunc func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (InvariantCheck, error)

var invariants = []struct {
	name string
	fn   invariantFunc
}{
	{"duplicate_general_plans", checkDuplicateGeneralPlans},
	{"orphaned_reflections", checkOrphanedReflections},
	{"mastery_out_of_range", checkMasteryRange},
	{"hours_out_of_range", checkHoursRange},
	{"active_without_days", checkActiveWithoutDays},
	{"legacy_strategy_ids", checkLegacyStrategyIDs},
}

// ValidateRegulaInvariants audits stored plans and reflections. A nil userID
// audits every user.
func ValidateRegulaInvariants(ctx context.Context, db *gorm.DB, userID uuid.UUID) InvariantReport {
	report := InvariantReport{
		Status:    CheckPass,
		CheckedAt: time.Now().UTC(),
	}
	if userID != uuid.Nil {
		report.UserID = userID.String()
	}
	if db == nil {
		report.Status = CheckError
		return report
	}

	checks := make([]InvariantCheck, 0, len(invariants))
	for _, inv := range invariants {
		check, err := inv.fn(ctx, db, userID)
		if err != nil {
			check = invariantError(inv.name, err)
		}
		if check.Status != CheckPass {
			report.Status = CheckFail
		}
		checks = append(checks, check)
	}
	report.Checks = checks
	return report
}

func invariantError(name string, err error) InvariantCheck {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return InvariantCheck{Name: name, Status: CheckError, Error: msg}
}

func scopeUser(q *gorm.DB, column string, userID uuid.UUID) *gorm.DB {
	if userID == uuid.Nil {
		return q
	}
	return q.Where(column+" = ?", userID)
}

type dupPlanRow struct {
	UserID uuid.UUID `gorm:"column:user_id"`
	Count  int       `gorm:"column:count"`
}

func checkDuplicateGeneralPlans(ctx context.Context, db *gorm.DB, userID uuid.UUID) (InvariantCheck, error) {
	check := InvariantCheck{Name: "duplicate_general_plans", Status: CheckPass}
	rows := []dupPlanRow{}
	q := db.WithContext(ctx).
		Table("general_plan").
		Select("user_id, COUNT(*) AS count")
	err := scopeUser(q, "user_id", userID).
		Group("user_id").
		Having("COUNT(*) > 1").
		Order("count DESC").
		Limit(sampleLimit).
		Scan(&rows).Error
	if err != nil {
		return check, err
	}
	for _, row := range rows {
		check.Count += row.Count
		check.Sample = append(check.Sample, fmt.Sprintf("%s:%d", row.UserID, row.Count))
	}
	if len(rows) > 0 {
		check.Status = CheckFail
	}
	return check, nil
}

type orphanRow struct {
	ID        uuid.UUID `gorm:"column:id"`
	SubPlanID uuid.UUID `gorm:"column:sub_plan_id"`
}

func checkOrphanedReflections(ctx context.Context, db *gorm.DB, userID uuid.UUID) (InvariantCheck, error) {
	check := InvariantCheck{Name: "orphaned_reflections", Status: CheckPass}
	if userID != uuid.Nil {
		// Orphans have no owning sub-plan, so they cannot be scoped to a user.
		check.Details = map[string]any{"scoped": false}
	}
	query := func() *gorm.DB {
		return db.WithContext(ctx).
			Table("reflection AS r").
			Joins("LEFT JOIN sub_plan sp ON sp.id = r.sub_plan_id").
			Where("sp.id IS NULL")
	}
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return check, err
	}
	if total == 0 {
		return check, nil
	}
	rows := []orphanRow{}
	if err := query().Select("r.id, r.sub_plan_id").Limit(sampleLimit).Find(&rows).Error; err != nil {
		return check, err
	}
	for _, row := range rows {
		check.Sample = append(check.Sample, fmt.Sprintf("%s->%s", row.ID, row.SubPlanID))
	}
	check.Status = CheckFail
	check.Count = int(total)
	return check, nil
}

func checkMasteryRange(ctx context.Context, db *gorm.DB, userID uuid.UUID) (InvariantCheck, error) {
	return checkSubPlanRange(ctx, db, userID, "mastery_out_of_range", "mastery", regula.MasteryMin, regula.MasteryMax)
}

func checkHoursRange(ctx context.Context, db *gorm.DB, userID uuid.UUID) (InvariantCheck, error) {
	return checkSubPlanRange(ctx, db, userID, "hours_out_of_range", "hours_per_day", regula.HoursPerDayMin, regula.HoursPerDayMax)
}

type rangeRow struct {
	ID    uuid.UUID `gorm:"column:id"`
	Value int       `gorm:"column:value"`
}

func checkSubPlanRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, name, column string, lo, hi int) (InvariantCheck, error) {
	check := InvariantCheck{Name: name, Status: CheckPass}
	query := func() *gorm.DB {
		return scopeUser(db.WithContext(ctx).Table("sub_plan"), "user_id", userID).
			Where("("+column+" < ? OR "+column+" > ?)", lo, hi)
	}
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return check, err
	}
	if total == 0 {
		return check, nil
	}
	rows := []rangeRow{}
	if err := query().Select("id, " + column + " AS value").Limit(sampleLimit).Find(&rows).Error; err != nil {
		return check, err
	}
	for _, row := range rows {
		check.Sample = append(check.Sample, fmt.Sprintf("%s:%d", row.ID, row.Value))
	}
	check.Status = CheckFail
	check.Count = int(total)
	return check, nil
}

type daysRow struct {
	ID           uuid.UUID                   `gorm:"column:id"`
	SelectedDays datatypes.JSONSlice[string] `gorm:"column:selected_days"`
}

// Plans activated before the day-set rule existed may still be active with no
// days, so this check only fails in strict mode.
func checkActiveWithoutDays(ctx context.Context, db *gorm.DB, userID uuid.UUID) (InvariantCheck, error) {
	check := InvariantCheck{Name: "active_without_days", Status: CheckPass}
	rows := []daysRow{}
	err := scopeUser(db.WithContext(ctx).Table("sub_plan"), "user_id", userID).
		Select("id, selected_days").
		Where("status = ?", regula.StatusActive).
		Find(&rows).Error
	if err != nil {
		return check, err
	}
	for _, row := range rows {
		if len(row.SelectedDays) > 0 {
			continue
		}
		check.Count++
		if len(check.Sample) < sampleLimit {
			check.Sample = append(check.Sample, row.ID.String())
		}
	}
	if check.Count == 0 {
		return check, nil
	}
	if !strictActiveDays() {
		check.Details = map[string]any{"strict_mode": false}
		return check, nil
	}
	check.Status = CheckFail
	return check, nil
}

func strictActiveDays() bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv("REGULA_AUDIT_STRICT_DAYS"))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

type strategiesRow struct {
	ID                 uuid.UUID                   `gorm:"column:id"`
	SelectedStrategies datatypes.JSONSlice[string] `gorm:"column:selected_strategies"`
}

func checkLegacyStrategyIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID) (InvariantCheck, error) {
	check := InvariantCheck{Name: "legacy_strategy_ids", Status: CheckPass}
	rows := []strategiesRow{}
	err := scopeUser(db.WithContext(ctx).Table("sub_plan"), "user_id", userID).
		Select("id, selected_strategies").
		Find(&rows).Error
	if err != nil {
		return check, err
	}
	for _, row := range rows {
		legacy := 0
		for _, id := range row.SelectedStrategies {
			if strategy.IsLegacyID(id) {
				legacy++
			}
		}
		if legacy == 0 {
			continue
		}
		check.Count++
		if len(check.Sample) < sampleLimit {
			check.Sample = append(check.Sample, fmt.Sprintf("%s:legacy=%d", row.ID, legacy))
		}
	}
	if check.Count > 0 {
		check.Status = CheckFail
	}
	return check, nil
}

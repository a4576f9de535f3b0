package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/regula-backend/internal/domain/regula"
)

var weekdays = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
	"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {}, "sat": {}, "sun": {},
}

// IsWeekday accepts full and three-letter English day names in any case.
func IsWeekday(day string) bool {
	_, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
	return ok
}

// ValidateSubPlanFields range-checks mastery and hoursPerDay, rejects a blank
// name, and requires a non-empty day set when the write newly activates the
// plan.
func ValidateSubPlanFields(f regula.SubPlanFields) error {
	return toValidationError(validate.Struct(f))
}

// ValidateGeneralPlanFields checks the name and grade members that are set.
func ValidateGeneralPlanFields(f regula.GeneralPlanFields) error {
	return toValidationError(validate.Struct(f))
}

func subPlanStructValidation(sl validator.StructLevel) {
	f := sl.Current().Interface().(regula.SubPlanFields)

	if f.Name != nil && strings.TrimSpace(*f.Name) == "" {
		sl.ReportError(*f.Name, "name", "Name", ruleRequired, "")
	}
	if f.Mastery != nil && (*f.Mastery < regula.MasteryMin || *f.Mastery > regula.MasteryMax) {
		sl.ReportError(*f.Mastery, "mastery", "Mastery", ruleRange, "0..100")
	}
	if f.HoursPerDay != nil && (*f.HoursPerDay < regula.HoursPerDayMin || *f.HoursPerDay > regula.HoursPerDayMax) {
		sl.ReportError(*f.HoursPerDay, "hoursPerDay", "HoursPerDay", ruleRange, "0..24")
	}
	if f.Status != nil && strings.TrimSpace(*f.Status) == "" {
		sl.ReportError(*f.Status, "status", "Status", ruleRequired, "")
	}
	if f.SelectedDays != nil {
		for _, d := range *f.SelectedDays {
			if !IsWeekday(d) {
				sl.ReportError(*f.SelectedDays, "selectedDays", "SelectedDays", ruleWeekday, d)
				break
			}
		}
	}
	activating := f.Status != nil && *f.Status == regula.StatusActive && f.PreviousStatus != regula.StatusActive
	if activating && (f.SelectedDays == nil || len(*f.SelectedDays) == 0) {
		sl.ReportError(f.SelectedDays, "selectedDays", "SelectedDays", ruleRequired, "")
	}
}

func generalPlanStructValidation(sl validator.StructLevel) {
	f := sl.Current().Interface().(regula.GeneralPlanFields)

	if f.Name != nil && strings.TrimSpace(*f.Name) == "" {
		sl.ReportError(*f.Name, "name", "Name", ruleRequired, "")
	}
	if f.GradeGoal != nil {
		if _, ok := regula.ParseGradeGoal(*f.GradeGoal); !ok {
			sl.ReportError(*f.GradeGoal, "gradeGoal", "GradeGoal", ruleOneOf, "A B C D E F")
		}
	}
}

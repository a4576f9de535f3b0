package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/regula-backend/internal/domain/regula"
)

type scaleField struct {
	json   string
	goName string
	value  func(regula.ReflectionInput) *int
}

var (
	editScales = []scaleField{
		{"control", "Control", func(in regula.ReflectionInput) *int { return in.Control }},
		{"awareness", "Awareness", func(in regula.ReflectionInput) *int { return in.Awareness }},
		{"strengths", "Strengths", func(in regula.ReflectionInput) *int { return in.Strengths }},
		{"planning", "Planning", func(in regula.ReflectionInput) *int { return in.Planning }},
	}
	completeScales = []scaleField{
		{"alternatives", "Alternatives", func(in regula.ReflectionInput) *int { return in.Alternatives }},
		{"summary", "Summary", func(in regula.ReflectionInput) *int { return in.Summary }},
		{"diagrams", "Diagrams", func(in regula.ReflectionInput) *int { return in.Diagrams }},
		{"adaptation", "Adaptation", func(in regula.ReflectionInput) *int { return in.Adaptation }},
	}
)

// RequiredScales lists the JSON names of the scale fields a reflection type
// must carry. Unknown types require nothing.
func RequiredScales(t regula.ReflectionType) []string {
	var fields []scaleField
	switch t {
	case regula.ReflectionEdit:
		fields = editScales
	case regula.ReflectionComplete:
		fields = completeScales
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.json)
	}
	return out
}

// ValidateReflection checks a create payload. The type picks the mandatory
// scale set; a non-blank comment is mandatory for both known types.
func ValidateReflection(in regula.ReflectionInput) error {
	return toValidationError(validate.Struct(in))
}

func reflectionStructValidation(sl validator.StructLevel) {
	in := sl.Current().Interface().(regula.ReflectionInput)

	var required, optional []scaleField
	switch in.Type {
	case regula.ReflectionEdit:
		required, optional = editScales, completeScales
	case regula.ReflectionComplete:
		required, optional = completeScales, editScales
	default:
		// Other types carry no required fields; present scales are still
		// range checked.
		if strings.TrimSpace(string(in.Type)) == "" {
			sl.ReportError(in.Type, "type", "Type", ruleRequired, "")
		}
		checkOptionalScales(sl, in, append(append([]scaleField{}, editScales...), completeScales...))
		return
	}

	for _, f := range required {
		v := f.value(in)
		switch {
		case v == nil:
			sl.ReportError(v, f.json, f.goName, ruleRequired, "")
		case *v < regula.ScaleMin || *v > regula.ScaleMax:
			sl.ReportError(*v, f.json, f.goName, ruleScale, "1..5")
		}
	}
	if in.Comment == nil || strings.TrimSpace(*in.Comment) == "" {
		sl.ReportError(in.Comment, "comment", "Comment", ruleRequired, "")
	}
	checkOptionalScales(sl, in, optional)
}

// checkOptionalScales keeps scales the type does not require within 0..5, the
// value 0 standing for "not answered".
func checkOptionalScales(sl validator.StructLevel, in regula.ReflectionInput, fields []scaleField) {
	for _, f := range fields {
		if v := f.value(in); v != nil && (*v < 0 || *v > regula.ScaleMax) {
			sl.ReportError(*v, f.json, f.goName, ruleRange, "0..5")
		}
	}
}

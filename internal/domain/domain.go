package domain

import (
	"github.com/google/uuid"

	"github.com/yungbote/regula-backend/internal/domain/regula"
)

type GeneralPlan = regula.GeneralPlan
type SubPlan = regula.SubPlan
type Reflection = regula.Reflection

type GradeGoal = regula.GradeGoal
type ReflectionType = regula.ReflectionType
type ReflectionInput = regula.ReflectionInput
type ReflectionPatch = regula.ReflectionPatch
type SubPlanFields = regula.SubPlanFields
type GeneralPlanFields = regula.GeneralPlanFields
type Owned = regula.Owned

func IsOwner(entity Owned, userID uuid.UUID) bool { return regula.IsOwner(entity, userID) }

const (
	ReflectionEdit     = regula.ReflectionEdit
	ReflectionComplete = regula.ReflectionComplete

	StatusActive    = regula.StatusActive
	StatusCompleted = regula.StatusCompleted
)

func ParseGradeGoal(raw string) (GradeGoal, bool) { return regula.ParseGradeGoal(raw) }

package regula

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type ReflectionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Reflection) ([]*types.Reflection, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Reflection, error)
	GetBySubPlanID(dbc dbctx.Context, subPlanID uuid.UUID) ([]*types.Reflection, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Reflection, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error
	DeleteBySubPlanIDs(dbc dbctx.Context, subPlanIDs []uuid.UUID) error
}

type reflectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReflectionRepo(db *gorm.DB, baseLog *logger.Logger) ReflectionRepo {
	return &reflectionRepo{
		db:  db,
		log: baseLog.With("repo", "ReflectionRepo"),
	}
}

func (r *reflectionRepo) Create(dbc dbctx.Context, rows []*types.Reflection) ([]*types.Reflection, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Reflection{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit("SubPlan").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reflectionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Reflection, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Reflection
	if err := t.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// GetBySubPlanID lists a sub-plan's reflections newest first.
func (r *reflectionRepo) GetBySubPlanID(dbc dbctx.Context, subPlanID uuid.UUID) ([]*types.Reflection, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Reflection
	if subPlanID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("sub_plan_id = ?", subPlanID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByUserID lists every reflection on the user's sub-plans newest first.
func (r *reflectionRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Reflection, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Reflection
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Reflection{}).
		Joins("JOIN sub_plan ON sub_plan.id = reflection.sub_plan_id").
		Where("sub_plan.user_id = ?", userID).
		Order("reflection.created_at DESC, reflection.id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reflectionRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]any{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Reflection{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *reflectionRepo) DeleteBySubPlanIDs(dbc dbctx.Context, subPlanIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(subPlanIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("sub_plan_id IN ?", subPlanIDs).
		Delete(&types.Reflection{}).Error
}

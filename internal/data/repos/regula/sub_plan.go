package regula

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type SubPlanRepo interface {
	Create(dbc dbctx.Context, plans []*types.SubPlan) ([]*types.SubPlan, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SubPlan, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.SubPlan, error)
	ListBatch(dbc dbctx.Context, afterID uuid.UUID, limit int) ([]*types.SubPlan, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type subPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubPlanRepo(db *gorm.DB, baseLog *logger.Logger) SubPlanRepo {
	return &subPlanRepo{
		db:  db,
		log: baseLog.With("repo", "SubPlanRepo"),
	}
}

func (r *subPlanRepo) Create(dbc dbctx.Context, plans []*types.SubPlan) ([]*types.SubPlan, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(plans) == 0 {
		return []*types.SubPlan{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *subPlanRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SubPlan, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.SubPlan
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

// GetByUserID lists the user's sub-plans newest first.
func (r *subPlanRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.SubPlan, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.SubPlan
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListBatch pages through every sub-plan in id order, starting after afterID.
func (r *subPlanRepo) ListBatch(dbc dbctx.Context, afterID uuid.UUID, limit int) ([]*types.SubPlan, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 200
	}
	q := t.WithContext(dbc.Ctx).Model(&types.SubPlan{})
	if afterID != uuid.Nil {
		q = q.Where("id > ?", afterID)
	}
	var out []*types.SubPlan
	if err := q.Order("id ASC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *subPlanRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) error {
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
		Model(&types.SubPlan{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *subPlanRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.SubPlan{}).Error
}

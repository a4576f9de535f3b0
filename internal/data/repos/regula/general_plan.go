package regula

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/regula-backend/internal/domain"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type GeneralPlanRepo interface {
	Ensure(dbc dbctx.Context, plan *types.GeneralPlan) (bool, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.GeneralPlan, error)
	UpdateFieldsByUserID(dbc dbctx.Context, userID uuid.UUID, updates map[string]any) (int64, error)
}

type generalPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneralPlanRepo(db *gorm.DB, baseLog *logger.Logger) GeneralPlanRepo {
	return &generalPlanRepo{
		db:  db,
		log: baseLog.With("repo", "GeneralPlanRepo"),
	}
}

// Ensure inserts plan unless the user already has one. It reports whether a
// row was written; a concurrent insert that lost the race reports false.
func (r *generalPlanRepo) Ensure(dbc dbctx.Context, plan *types.GeneralPlan) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if plan == nil || plan.UserID == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(plan)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *generalPlanRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.GeneralPlan, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.GeneralPlan
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// UpdateFieldsByUserID applies updates to the user's plan and returns the
// number of rows touched, so callers can tell a missing plan from a no-op.
func (r *generalPlanRepo) UpdateFieldsByUserID(dbc dbctx.Context, userID uuid.UUID, updates map[string]any) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return 0, nil
	}
	if updates == nil {
		updates = map[string]any{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.GeneralPlan{}).
		Where("user_id = ?", userID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

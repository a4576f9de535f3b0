package services

import (
	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/pkg/ctxutil"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

// inTx runs fn inside dbc.Tx when the caller already holds one, otherwise in a
// fresh transaction. fn must only touch the store through the Context it is
// handed.
func inTx[T any](db *gorm.DB, log *logger.Logger, dbc dbctx.Context, op string, fn func(inner dbctx.Context) (T, error)) (T, error) {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	var out T
	err := db.WithContext(ctxutil.Default(dbc.Ctx)).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = fn(dbc.WithTx(tx))
		return err
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			log.Warn(op+" transaction error", "error", err)
		}
		var zero T
		return zero, err
	}
	return out, nil
}

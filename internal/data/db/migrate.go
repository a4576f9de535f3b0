package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/regula-backend/internal/domain/regula"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&regula.GeneralPlan{},
		&regula.SubPlan{},
		&regula.Reflection{},
	}
}

func AutoMigrateAll(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureRegulaConstraints(conn)
}

// EnsureRegulaConstraints adds the reflection -> sub_plan foreign key that
// AutoMigrate skips when constraint creation is disabled. SQLite cannot add a
// constraint to an existing table, so there the check is left to the audit.
func EnsureRegulaConstraints(conn *gorm.DB) error {
	if IsSQLite(conn) {
		return nil
	}
	m := conn.Migrator()
	if m.HasConstraint(&regula.Reflection{}, "SubPlan") {
		return nil
	}
	if err := m.CreateConstraint(&regula.Reflection{}, "SubPlan"); err != nil {
		return fmt.Errorf("create reflection sub_plan constraint: %w", err)
	}
	return nil
}

package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: general_plan.user_id (2067)"), true},
		{"other", errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{User: "u", Password: "p", Host: "h", Port: "5432", Name: "regula"}
	if got, want := cfg.PostgresDSN(), "postgres://u:p@h:5432/regula?sslmode=disable"; got != want {
		t.Fatalf("PostgresDSN: want %q got %q", want, got)
	}
}

func TestMigrateSQLite(t *testing.T) {
	conn, err := OpenSQLite("file:migrate_test?mode=memory&cache=shared", &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if !IsSQLite(conn) {
		t.Fatalf("expected sqlite dialect, got %q", DialectName(conn))
	}
	if err := AutoMigrateAll(conn); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	for _, table := range []string{"general_plan", "sub_plan", "reflection"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}
	if !conn.Migrator().HasIndex("general_plan", "idx_general_plan_user") {
		t.Fatalf("expected unique index on general_plan.user_id")
	}
}

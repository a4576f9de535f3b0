package redis

import (
	"context"
	"testing"

	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

func TestNewCacheRequiresAddr(t *testing.T) {
	if _, err := NewCache(logger.Nop(), "  "); err == nil {
		t.Fatalf("expected error for empty addr")
	}
	if _, err := NewCache(nil, "localhost:6379"); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error from nil cache Get")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil cache: %v", err)
	}
}

package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = value
	return nil
}

func newTestClient(t *testing.T, baseURL string, cache Cache) Client {
	t.Helper()
	c, err := NewClient(logger.Nop(), Config{BaseURL: baseURL, APIKey: "k", Timeout: time.Second, CacheTTL: time.Minute}, cache)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestListActivities(t *testing.T) {
	userID := uuid.New()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/users/"+userID.String()+"/activities" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("missing bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Quiz", "completedAt": "2024-01-01T09:00:00Z"},
			{"id": "b", "title": "Essay", "completedAt": "2024-01-02T08:00"},
			{"id": "c", "title": "Draft", "completedAt": null}
		]`))
	}))
	defer srv.Close()

	cache := &memCache{}
	c := newTestClient(t, srv.URL, cache)
	acts := c.ListActivities(context.Background(), userID)
	if len(acts) != 3 {
		t.Fatalf("want 3 activities got %d", len(acts))
	}
	if acts[0].ID != "1" || acts[1].ID != "b" {
		t.Fatalf("unexpected ids: %q %q", acts[0].ID, acts[1].ID)
	}
	if acts[0].CompletedAt == nil || acts[1].CompletedAt == nil || acts[2].CompletedAt != nil {
		t.Fatalf("unexpected completion times: %+v", acts)
	}

	again := c.ListActivities(context.Background(), userID)
	if len(again) != 3 {
		t.Fatalf("cached read: want 3 got %d", len(again))
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected second call to be served from cache, upstream hits=%d", n)
	}
}

func TestListActivitiesFallsBackToEmpty(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			acts := newTestClient(t, srv.URL, nil).ListActivities(context.Background(), uuid.New())
			if acts == nil || len(acts) != 0 {
				t.Fatalf("expected empty non-nil slice, got %#v", acts)
			}
		})
	}
}

func TestListActivitiesWithoutBaseURL(t *testing.T) {
	acts := newTestClient(t, "", nil).ListActivities(context.Background(), uuid.New())
	if acts == nil || len(acts) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", acts)
	}
}

func TestDecodeActivitiesWrapped(t *testing.T) {
	acts, err := decodeActivities([]byte(`{"activities":[{"id":"x","title":"T","completedAt":"2024-03-01"}]}`))
	if err != nil || len(acts) != 1 {
		t.Fatalf("decode wrapped: err=%v acts=%v", err, acts)
	}
	if got := acts[0].CompletedAt.Format("2006-01-02"); !strings.HasPrefix(got, "2024-03-01") {
		t.Fatalf("unexpected date %s", got)
	}
}

func TestListActivitiesRetriesUpstreamErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"title":"Quiz","completedAt":"2024-01-01T09:00:00Z"}]`))
	}))
	defer srv.Close()

	c, err := NewClient(logger.Nop(), Config{BaseURL: srv.URL, Timeout: time.Second, MaxRetries: 1}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	acts := c.ListActivities(context.Background(), uuid.New())
	if len(acts) != 1 || acts[0].Title != "Quiz" {
		t.Fatalf("expected activity after retry, got %+v", acts)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("expected 2 requests, got %d", n)
	}
}

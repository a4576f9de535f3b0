package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/regula-backend/internal/pkg/httpx"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

const tracerName = "github.com/yungbote/regula-backend/internal/clients/analytics"

// Activity is one completed learning activity reported upstream. CompletedAt
// is nil when the upstream value is missing or unparsable.
type Activity struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Cache stores raw upstream payloads. Misses return ok=false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	CacheTTL   time.Duration
}

type Client interface {
	// ListActivities never fails: upstream or decode errors yield an empty
	// slice and a warning.
	ListActivities(ctx context.Context, userID uuid.UUID) []Activity
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      httpx.RetryPolicy
	cache      Cache
	cacheTTL   time.Duration
}

// NewClient builds the analytics client. An empty BaseURL yields a client that
// always reports no activity. cache may be nil.
func NewClient(log *logger.Logger, cfg Config, cache Cache) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	retry := httpx.DefaultRetryPolicy()
	retry.MaxRetries = cfg.MaxRetries
	if retry.MaxRetries < 0 {
		retry.MaxRetries = 0
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL != "" {
		if _, err := url.Parse(baseURL); err != nil {
			return nil, fmt.Errorf("invalid analytics base url: %w", err)
		}
	}
	c := &client{
		log:        log.With("client", "AnalyticsClient"),
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: httpx.NewClient(cfg.Timeout),
		retry:      retry,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
	}
	if baseURL == "" {
		c.log.Warn("ANALYTICS_BASE_URL not set; activity history will be empty")
	}
	return c, nil
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("analytics http %d: %s", e.StatusCode, e.Body)
}

func (e *httpError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) ListActivities(ctx context.Context, userID uuid.UUID) []Activity {
	out := []Activity{}
	if c.baseURL == "" || userID == uuid.Nil {
		return out
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.ListActivities")
	defer span.End()
	span.SetAttributes(attribute.String("analytics.base_url", c.baseURL))

	key := cacheKey(userID)
	if c.cache != nil && c.cacheTTL > 0 {
		raw, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.log.Debug("analytics cache read failed", "error", err)
		} else if ok {
			if acts, err := decodeActivities(raw); err == nil {
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return acts
			}
		}
	}

	raw, err := c.get(ctx, "/users/"+url.PathEscape(userID.String())+"/activities")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream unavailable")
		c.log.Warn("analytics fetch failed; treating as no data", "user_id", userID, "error", err)
		return out
	}
	acts, err := decodeActivities(raw)
	if err != nil {
		span.RecordError(err)
		c.log.Warn("analytics decode failed; treating as no data", "user_id", userID, "error", err)
		return out
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
			c.log.Debug("analytics cache write failed", "error", err)
		}
	}
	span.SetAttributes(attribute.Int("analytics.activities", len(acts)))
	return acts
}

func cacheKey(userID uuid.UUID) string {
	return "regula:analytics:activities:" + userID.String()
}

func (c *client) doOnce(ctx context.Context, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) get(ctx context.Context, path string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, raw, err := c.doOnce(ctx, path)
		if err == nil {
			return raw, nil
		}
		if !httpx.IsRetryableError(err) || attempt >= c.retry.MaxRetries {
			return nil, err
		}

		sleepFor := c.retry.Delay(attempt, resp)
		c.log.Debug("analytics request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.retry.MaxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if err := httpx.Wait(ctx, sleepFor); err != nil {
			return nil, err
		}
	}
}

type wireActivity struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	CompletedAt *string         `json:"completedAt"`
}

var completedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// decodeActivities accepts a bare array or an object wrapping it under
// "activities".
func decodeActivities(raw []byte) ([]Activity, error) {
	var rows []wireActivity
	if err := json.Unmarshal(raw, &rows); err != nil {
		var wrapped struct {
			Activities []wireActivity `json:"activities"`
		}
		if wErr := json.Unmarshal(raw, &wrapped); wErr != nil {
			return nil, err
		}
		rows = wrapped.Activities
	}
	out := make([]Activity, 0, len(rows))
	for _, r := range rows {
		out = append(out, Activity{
			ID:          strings.Trim(strings.TrimSpace(string(r.ID)), `"`),
			Title:       r.Title,
			CompletedAt: parseCompletedAt(r.CompletedAt),
		})
	}
	return out, nil
}

func parseCompletedAt(v *string) *time.Time {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	for _, layout := range completedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

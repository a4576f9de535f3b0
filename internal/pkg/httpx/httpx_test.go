package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, true},
		{statusErr(503), true},
		{statusErr(429), true},
		{fmt.Errorf("wrapped: %w", statusErr(500)), true},
		{statusErr(404), false},
		{errors.New("plain"), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("IsRetryableError(%v)=%v want %v", tc.err, got, tc.want)
		}
	}
}

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}
	if got := p.Delay(0, nil); got != 100*time.Millisecond {
		t.Fatalf("attempt 0: %v", got)
	}
	if got := p.Delay(2, nil); got != 400*time.Millisecond {
		t.Fatalf("attempt 2: %v", got)
	}
	if got := p.Delay(10, nil); got != time.Second {
		t.Fatalf("attempt 10 should be capped: %v", got)
	}

	resp := &http.Response{Header: http.Header{"Retry-After": []string{"1"}}}
	if got := (RetryPolicy{BaseDelay: time.Millisecond}).Delay(0, resp); got != time.Second {
		t.Fatalf("Retry-After not honored: %v", got)
	}
	resp.Header.Set("Retry-After", "30")
	if got := p.Delay(0, resp); got != time.Second {
		t.Fatalf("Retry-After not capped: %v", got)
	}
}

func TestRetryPolicyJitterBounds(t *testing.T) {
	p := RetryPolicy{BaseDelay: time.Second, Jitter: 0.2}
	for i := 0; i < 50; i++ {
		d := p.Delay(0, nil)
		if d < 800*time.Millisecond || d > 1200*time.Millisecond {
			t.Fatalf("jittered delay out of bounds: %v", d)
		}
	}
}

func TestRetryAfterHTTPDate(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", now.Add(3*time.Second).Format(http.TimeFormat))
	d, ok := retryAfter(resp, now)
	if !ok || d != 3*time.Second {
		t.Fatalf("retryAfter=%v ok=%v", d, ok)
	}
	resp.Header.Set("Retry-After", "soon")
	if _, ok := retryAfter(resp, now); ok {
		t.Fatalf("unparseable Retry-After accepted")
	}
}

func TestWaitStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Wait(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewClientTimeout(t *testing.T) {
	if got := NewClient(0).Timeout; got != 5*time.Second {
		t.Fatalf("default timeout: %v", got)
	}
	if got := NewClient(time.Second).Timeout; got != time.Second {
		t.Fatalf("timeout: %v", got)
	}
}

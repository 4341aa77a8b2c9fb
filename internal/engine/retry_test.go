package engine

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

var fastRetry = RetryConfig{
	MaxRetries:  3,
	InitialWait: time.Millisecond,
	MaxWait:     5 * time.Millisecond,
	Multiplier:  2.0,
}

func stubResponse(code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader("")),
	}
}

func TestRetryHTTPSucceedsAfterTransientStatus(t *testing.T) {
	attempts := 0
	resp, err := RetryHTTP(context.Background(), fastRetry, func() (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return stubResponse(503), nil
		}
		return stubResponse(200), nil
	})
	if err != nil {
		t.Fatalf("RetryHTTP: %v", err)
	}
	if resp.StatusCode != 200 || attempts != 3 {
		t.Errorf("got status %d after %d attempts", resp.StatusCode, attempts)
	}
}

func TestRetryHTTPNonRetryableError(t *testing.T) {
	attempts := 0
	permanent := errors.New("bad request")
	_, err := RetryHTTP(context.Background(), fastRetry, func() (*http.Response, error) {
		attempts++
		return nil, permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("want permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("non-retryable error retried %d times", attempts)
	}
}

func TestRetryHTTPNonRetryableStatus(t *testing.T) {
	attempts := 0
	resp, err := RetryHTTP(context.Background(), fastRetry, func() (*http.Response, error) {
		attempts++
		return stubResponse(404), nil
	})
	if err != nil {
		t.Fatalf("RetryHTTP: %v", err)
	}
	if resp.StatusCode != 404 || attempts != 1 {
		t.Errorf("got status %d after %d attempts, want 404 after 1", resp.StatusCode, attempts)
	}
}

func TestRetryHTTPExhausted(t *testing.T) {
	attempts := 0
	_, err := RetryHTTP(context.Background(), fastRetry, func() (*http.Response, error) {
		attempts++
		return stubResponse(429), nil
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q should carry the status code", err)
	}
	if attempts != fastRetry.MaxRetries+1 {
		t.Errorf("attempts = %d, want %d", attempts, fastRetry.MaxRetries+1)
	}
}

func TestRetryHTTPContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RetryHTTP(ctx, fastRetry, func() (*http.Response, error) {
		t.Error("fn must not run with cancelled context")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !isRetryableStatus(code) {
			t.Errorf("%d should be retryable", code)
		}
	}
	for _, code := range []int{200, 301, 400, 401, 403, 404} {
		if isRetryableStatus(code) {
			t.Errorf("%d should not be retryable", code)
		}
	}
}

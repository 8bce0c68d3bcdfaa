package ratelimit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

// TestNewLimiter tests the Limiter constructor
func TestNewLimiter(t *testing.T) {
	t.Run("ValidRate", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil for valid rate")
		}
		if limiter.rate != 1024*1024 {
			t.Errorf("rate = %d, want %d", limiter.rate, 1024*1024)
		}
	})

	t.Run("ZeroDisablesLimiting", func(t *testing.T) {
		if NewLimiter(0) != nil {
			t.Error("NewLimiter(0) should return nil")
		}
	})

	t.Run("NegativeDisablesLimiting", func(t *testing.T) {
		if NewLimiter(-100) != nil {
			t.Error("NewLimiter(-100) should return nil")
		}
	})

	t.Run("SmallRateGetsMinimumBucket", func(t *testing.T) {
		limiter := NewLimiter(1000)
		if limiter.bucket < minBucket {
			t.Errorf("bucket = %d, want at least %d", limiter.bucket, minBucket)
		}
	})

	t.Run("BucketStartsFull", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		if limiter.available != limiter.bucket {
			t.Errorf("available = %d, want %d", limiter.available, limiter.bucket)
		}
	})
}

// TestNewReader tests reader construction and passthrough
func TestNewReader(t *testing.T) {
	t.Run("NilLimiterPassesThrough", func(t *testing.T) {
		base := strings.NewReader("content")
		reader := NewReader(context.Background(), base, nil)
		if reader != base {
			t.Error("NewReader() should return the original reader when limiter is nil")
		}
	})

	t.Run("WithLimiterWraps", func(t *testing.T) {
		base := strings.NewReader("content")
		reader := NewReader(context.Background(), base, NewLimiter(1024))
		if _, ok := reader.(*Reader); !ok {
			t.Error("NewReader() should return *Reader when limiter is provided")
		}
	})
}

// TestReaderRead tests reading through the limiter
func TestReaderRead(t *testing.T) {
	t.Run("ContentPreserved", func(t *testing.T) {
		content := []byte("0123456789abcdef")
		reader := NewReader(context.Background(), bytes.NewReader(content), NewLimiter(1024*1024))

		got, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("ReadAll() = %q, want %q", got, content)
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		reader := NewReader(ctx, bytes.NewReader(make([]byte, 1024)), NewLimiter(1024*1024))
		if _, err := reader.Read(make([]byte, 100)); err == nil {
			t.Error("Read() should fail on cancelled context")
		}
	})
}

// TestTokenBucket tests token accounting
func TestTokenBucket(t *testing.T) {
	t.Run("Consume", func(t *testing.T) {
		limiter := NewLimiter(1024 * 1024)
		before := limiter.available

		limiter.consume(1000)

		if limiter.available != before-1000 {
			t.Errorf("available = %d, want %d", limiter.available, before-1000)
		}
	})

	t.Run("ConsumeClampsAtZero", func(t *testing.T) {
		limiter := NewLimiter(1024)
		limiter.available = 100

		limiter.consume(200)

		if limiter.available != 0 {
			t.Errorf("available = %d, want 0", limiter.available)
		}
	})

	t.Run("RefillCredits", func(t *testing.T) {
		limiter := NewLimiter(1000)
		limiter.available = 0
		limiter.last = time.Now().Add(-100 * time.Millisecond)

		limiter.refill()

		// ~100 tokens for 100ms at 1000 B/s
		if limiter.available < 50 || limiter.available > 150 {
			t.Errorf("available = %d, expected ~100", limiter.available)
		}
	})

	t.Run("RefillCapped", func(t *testing.T) {
		limiter := NewLimiter(1000)
		limiter.available = limiter.bucket - 10
		limiter.last = time.Now().Add(-time.Second)

		limiter.refill()

		if limiter.available != limiter.bucket {
			t.Errorf("available = %d, want %d", limiter.available, limiter.bucket)
		}
	})
}

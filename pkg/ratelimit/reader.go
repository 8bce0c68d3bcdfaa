package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// minBucket keeps transfers smooth at very low rates
const minBucket = 65536

// Limiter throttles data transfer using a token bucket. The bucket
// holds one second worth of data (at least 64KB) and starts full.
type Limiter struct {
	rate   int64 // bytes per second
	bucket int64 // maximum tokens (burst size)

	mu        sync.Mutex
	available int64
	last      time.Time
}

// NewLimiter creates a limiter for the given bytes-per-second rate.
// A rate of zero or less returns nil, which disables limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucket := bytesPerSecond
	if bucket < minBucket {
		bucket = minBucket
	}

	return &Limiter{
		rate:      bytesPerSecond,
		bucket:    bucket,
		available: bucket,
		last:      time.Now(),
	}
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps an io.Reader with rate limiting. A nil limiter
// returns the reader unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter, ctx: ctx}
}

// Read implements io.Reader, blocking until the limiter grants enough
// tokens for the requested chunk
func (r *Reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	want := int64(len(p))
	if want > r.limiter.bucket {
		want = r.limiter.bucket
	}

	r.limiter.wait(want)

	n, err := r.reader.Read(p[:want])
	if n > 0 {
		r.limiter.consume(int64(n))
	}

	return n, err
}

// wait blocks until at least n tokens are available
func (l *Limiter) wait(n int64) {
	for {
		l.mu.Lock()
		l.refill()

		if l.available >= n {
			l.mu.Unlock()
			return
		}

		deficit := n - l.available
		l.mu.Unlock()

		sleep := time.Duration(float64(deficit) / float64(l.rate) * float64(time.Second))
		if sleep < time.Millisecond {
			sleep = time.Millisecond
		}
		time.Sleep(sleep)
	}
}

// refill credits tokens for elapsed time; caller must hold the lock
func (l *Limiter) refill() {
	now := time.Now()
	earned := int64(float64(now.Sub(l.last)) / float64(time.Second) * float64(l.rate))
	if earned <= 0 {
		return
	}

	l.available += earned
	if l.available > l.bucket {
		l.available = l.bucket
	}
	l.last = now
}

// consume debits tokens after a read completes
func (l *Limiter) consume(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.available -= n
	if l.available < 0 {
		l.available = 0
	}
}

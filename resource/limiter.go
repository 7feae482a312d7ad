// Package resource limits the background cost of snapshot traffic so
// that saving or restoring a large table does not starve a running
// search of CPU or IO bandwidth.
package resource

import (
	"context"
	"io"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Options holds resource limits.
type Options struct {
	// MaxBackgroundJobs is the maximum number of concurrent snapshot
	// jobs. If 0, defaults to 1.
	MaxBackgroundJobs int64

	// IOBytesPerSec is the maximum snapshot IO throughput.
	// If 0, unlimited.
	IOBytesPerSec int64
}

// DefaultOptions are the limits used when no modifiers are given.
var DefaultOptions = Options{
	MaxBackgroundJobs: 1,
}

// Limiter throttles background snapshot jobs and their IO. A nil
// Limiter is valid and imposes no limits.
type Limiter struct {
	jobs      *semaphore.Weighted
	ioLimiter *rate.Limiter
}

// NewLimiter creates a limiter from the default options and the given
// modifiers.
func NewLimiter(optFns ...func(*Options)) *Limiter {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxBackgroundJobs <= 0 {
		opts.MaxBackgroundJobs = 1
	}

	l := &Limiter{
		jobs: semaphore.NewWeighted(opts.MaxBackgroundJobs),
	}
	if opts.IOBytesPerSec > 0 {
		l.ioLimiter = rate.NewLimiter(rate.Limit(opts.IOBytesPerSec), int(opts.IOBytesPerSec))
	}
	return l
}

// AcquireJob reserves a background job slot, blocking until one is
// available or ctx is canceled.
func (l *Limiter) AcquireJob(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.jobs.Acquire(ctx, 1)
}

// TryAcquireJob reserves a job slot without blocking.
func (l *Limiter) TryAcquireJob() bool {
	if l == nil {
		return true
	}
	return l.jobs.TryAcquire(1)
}

// ReleaseJob releases a reserved job slot.
func (l *Limiter) ReleaseJob() {
	if l == nil {
		return
	}
	l.jobs.Release(1)
}

// WaitIO blocks until the IO limit allows n more bytes. Requests larger
// than the limiter's burst are split.
func (l *Limiter) WaitIO(ctx context.Context, n int) error {
	if l == nil || l.ioLimiter == nil {
		return nil
	}
	burst := l.ioLimiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := l.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// ThrottledWriter returns a writer that charges every write against the
// IO limit before forwarding it to w.
func (l *Limiter) ThrottledWriter(ctx context.Context, w io.Writer) io.Writer {
	if l == nil || l.ioLimiter == nil {
		return w
	}
	return &throttledWriter{ctx: ctx, l: l, w: w}
}

// ThrottledReader returns a reader that charges every read against the
// IO limit after it completes.
func (l *Limiter) ThrottledReader(ctx context.Context, r io.Reader) io.Reader {
	if l == nil || l.ioLimiter == nil {
		return r
	}
	return &throttledReader{ctx: ctx, l: l, r: r}
}

type throttledWriter struct {
	ctx context.Context
	l   *Limiter
	w   io.Writer
}

func (t *throttledWriter) Write(p []byte) (int, error) {
	if err := t.l.WaitIO(t.ctx, len(p)); err != nil {
		return 0, err
	}
	return t.w.Write(p)
}

type throttledReader struct {
	ctx context.Context
	l   *Limiter
	r   io.Reader
}

func (t *throttledReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		if waitErr := t.l.WaitIO(t.ctx, n); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}

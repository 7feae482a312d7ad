package resource

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_NilIsUnlimited(t *testing.T) {
	var l *Limiter

	require.NoError(t, l.AcquireJob(context.Background()))
	assert.True(t, l.TryAcquireJob())
	l.ReleaseJob()
	require.NoError(t, l.WaitIO(context.Background(), 1<<30))

	var buf bytes.Buffer
	w := l.ThrottledWriter(context.Background(), &buf)
	_, err := w.Write([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "data", buf.String())
}

func TestLimiter_JobSlots(t *testing.T) {
	l := NewLimiter(func(o *Options) {
		o.MaxBackgroundJobs = 1
	})

	require.True(t, l.TryAcquireJob())
	assert.False(t, l.TryAcquireJob(), "single slot already taken")
	l.ReleaseJob()
	assert.True(t, l.TryAcquireJob())
	l.ReleaseJob()
}

func TestLimiter_AcquireJobHonorsContext(t *testing.T) {
	l := NewLimiter(func(o *Options) {
		o.MaxBackgroundJobs = 1
	})
	require.True(t, l.TryAcquireJob())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.AcquireJob(ctx))
	l.ReleaseJob()
}

func TestLimiter_ThrottledCopyRoundTrips(t *testing.T) {
	l := NewLimiter(func(o *Options) {
		o.IOBytesPerSec = 1 << 20 // high enough not to stall the test
	})

	payload := strings.Repeat("x", 64*1024)
	var buf bytes.Buffer

	w := l.ThrottledWriter(context.Background(), &buf)
	_, err := w.Write([]byte(payload))
	require.NoError(t, err)

	r := l.ThrottledReader(context.Background(), &buf)
	got := make([]byte, len(payload))
	n, err := r.Read(got)
	require.NoError(t, err)
	assert.Equal(t, payload[:n], string(got[:n]))
}

func TestLimiter_WaitIOSplitsLargeRequests(t *testing.T) {
	l := NewLimiter(func(o *Options) {
		o.IOBytesPerSec = 64 << 20
	})

	// Larger than the burst size must still be admitted, just in chunks.
	require.NoError(t, l.WaitIO(context.Background(), 65<<20))
}

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestStartWithoutIntervalIsNoop(t *testing.T) {
	r := &countingReloader{}
	s := New(0, r)

	require.NoError(t, s.Start())
	s.Stop()
	assert.Equal(t, int32(0), r.calls.Load())
}

func TestRunReloadSwallowsErrors(t *testing.T) {
	r := &countingReloader{err: errors.New("boom")}
	s := New(time.Minute, r)

	s.runReload()
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestStartSchedulesReload(t *testing.T) {
	r := &countingReloader{}
	s := New(time.Second, r)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
}

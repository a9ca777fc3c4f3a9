package sync

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu    gosync.Mutex
	calls int
	n     int
	err   error
}

func (f *fakePurger) PurgeCompleted(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.n, f.err
}

func (f *fakePurger) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newSweeper(p Purger, schedule string) *Sweeper {
	logger, _ := logtest.NewNullLogger()
	return New(p, schedule, logrus.NewEntry(logger))
}

func TestRunOnce(t *testing.T) {
	p := &fakePurger{n: 3}
	s := newSweeper(p, "@every 1h")

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	st := s.Status()
	assert.Equal(t, 3, st.LastPurged)
	assert.Empty(t, st.LastError)
	assert.False(t, st.LastRun.IsZero())
	assert.False(t, st.Running)
}

func TestRunOnceRecordsError(t *testing.T) {
	p := &fakePurger{err: errors.New("disk full")}
	s := newSweeper(p, "@every 1h")

	_, err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, "disk full", s.Status().LastError)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := newSweeper(&fakePurger{}, "every so often")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, s.Status().Running)
}

func TestStartStop(t *testing.T) {
	s := newSweeper(&fakePurger{}, "@every 1h")

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Status().Running)

	s.Stop()
	s.Stop()
	assert.False(t, s.Status().Running)
}

func TestScheduledSweep(t *testing.T) {
	p := &fakePurger{n: 1}
	s := newSweeper(p, "@every 1s")

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.Calls() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestStopsWithContext(t *testing.T) {
	s := newSweeper(&fakePurger{}, "@every 1h")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.Status().Running }, time.Second, 10*time.Millisecond)
}

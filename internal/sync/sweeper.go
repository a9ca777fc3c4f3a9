package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// sweepTimeout bounds a single purge run.
const sweepTimeout = 30 * time.Second

// stopTimeout is how long Stop waits for a running purge.
const stopTimeout = 5 * time.Second

// Purger deletes completed tasks past their retention window.
type Purger interface {
	PurgeCompleted(ctx context.Context) (int, error)
}

// Status reports the outcome of the most recent sweep.
type Status struct {
	Running    bool      `json:"running"`
	LastRun    time.Time `json:"last_run"`
	LastPurged int       `json:"last_purged"`
	LastError  string    `json:"last_error,omitempty"`
}

// Sweeper runs a Purger on a cron schedule.
type Sweeper struct {
	purger   Purger
	schedule string
	log      *logrus.Entry

	mu      gosync.Mutex
	cron    *cron.Cron
	baseCtx context.Context
	stopCh  chan struct{}
	status  Status
}

// New creates a Sweeper. schedule accepts standard five-field cron
// expressions and descriptors such as "@every 1h" or "@daily".
func New(p Purger, schedule string, log *logrus.Entry) *Sweeper {
	return &Sweeper{
		purger:   p,
		schedule: schedule,
		log:      log.WithField("component", "sweeper"),
	}
}

// Start registers the sweep job and starts the scheduler. The sweeper
// stops by itself when ctx is cancelled. Starting twice is a no-op.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Running {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.sweep() }); err != nil {
		return fmt.Errorf("parsing sweep schedule %q: %w", s.schedule, err)
	}

	stopCh := make(chan struct{})
	s.cron = c
	s.baseCtx = ctx
	s.stopCh = stopCh
	s.status.Running = true
	c.Start()

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stopCh:
		}
	}()

	s.log.WithField("schedule", s.schedule).Info("sweeper started")
	return nil
}

// Stop halts the scheduler and waits briefly for a running sweep.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.status.Running {
		s.mu.Unlock()
		return
	}
	c := s.cron
	close(s.stopCh)
	s.cron = nil
	s.stopCh = nil
	s.status.Running = false
	s.mu.Unlock()

	select {
	case <-c.Stop().Done():
	case <-time.After(stopTimeout):
		s.log.Warn("stop timed out waiting for running sweep")
	}
	s.log.Info("sweeper stopped")
}

// RunOnce purges immediately, outside the schedule.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	n, err := s.purger.PurgeCompleted(ctx)

	s.mu.Lock()
	s.status.LastRun = time.Now()
	s.status.LastPurged = n
	s.status.LastError = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.mu.Unlock()

	return n, err
}

// Status returns the sweeper state.
func (s *Sweeper) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Sweeper) sweep() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.log.WithError(err).Error("sweep failed")
		return
	}
	if n > 0 {
		s.log.WithField("purged", n).Info("sweep finished")
	}
}

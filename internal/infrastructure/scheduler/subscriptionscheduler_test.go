package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	subscriptionUsecases "edulearn/internal/application/subscription/usecases"
	"edulearn/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (*subscriptionUsecases.ExpireSubscriptionsResult, error) {
	j.calls.Add(1)
	if j.err != nil {
		return nil, j.err
	}
	return &subscriptionUsecases.ExpireSubscriptionsResult{Expired: 1}, nil
}

func TestSubscriptionScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	job := &countingJob{}
	s := NewSubscriptionScheduler(job, 10*time.Millisecond, logger.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return job.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := job.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, job.calls.Load(), "no runs after Stop")

	// Stop is idempotent.
	s.Stop()
}

func TestSubscriptionScheduler_SurvivesJobErrors(t *testing.T) {
	job := &countingJob{err: errors.New("db down")}
	s := NewSubscriptionScheduler(job, 10*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return job.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	s.Stop()
}

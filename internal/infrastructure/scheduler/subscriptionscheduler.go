package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "edulearn/internal/application/subscription/usecases"
	"edulearn/internal/shared/logger"
)

const (
	defaultExpiryInterval = time.Hour
	expiryRunTimeout      = 5 * time.Minute
)

// ExpiryJob is satisfied by ExpireSubscriptionsUseCase.
type ExpiryJob interface {
	Execute(ctx context.Context) (*subscriptionUsecases.ExpireSubscriptionsResult, error)
}

// SubscriptionScheduler periodically moves lapsed active subscriptions to
// expired. Access checks compare end dates directly, so a late run never grants
// extra access.
type SubscriptionScheduler struct {
	job      ExpiryJob
	logger   logger.Interface
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSubscriptionScheduler(job ExpiryJob, interval time.Duration, logger logger.Interface) *SubscriptionScheduler {
	if interval <= 0 {
		interval = defaultExpiryInterval
	}
	return &SubscriptionScheduler{
		job:      job,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *SubscriptionScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting subscription scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop waits for an in-flight run to finish.
func (s *SubscriptionScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping subscription scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("subscription scheduler stopped")
	})
}

func (s *SubscriptionScheduler) runLoop(ctx context.Context) {
	// Catch up on anything that lapsed while the worker was down.
	s.processExpiredSubscriptions(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("subscription scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.processExpiredSubscriptions(ctx)
		}
	}
}

func (s *SubscriptionScheduler) processExpiredSubscriptions(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, expiryRunTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := s.job.Execute(runCtx)
	if err != nil {
		s.logger.Errorw("failed to process expired subscriptions",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.Expired > 0 || result.Failed > 0 {
		s.logger.Infow("expired subscriptions processed",
			"expired", result.Expired,
			"failed", result.Failed,
			"duration", time.Since(startTime),
		)
		return
	}
	s.logger.Debugw("no expired subscriptions to process", "duration", time.Since(startTime))
}

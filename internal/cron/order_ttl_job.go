package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/giftnest/giftnest-backend/pkg/logger"
)

const defaultOrderPendingTTL = 7 * 24 * time.Hour

// OrderTTLJobParams configure the pending order expiry job.
type OrderTTLJobParams struct {
	Logger     *logger.Logger
	Repository orderTTLRepo
	PendingTTL time.Duration
}

type orderTTLRepo interface {
	CancelPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewOrderTTLJob builds the job that cancels pending orders older than the
// configured TTL. Orders never receive payment in this system, so pending
// ones left untouched are abandoned checkouts.
func NewOrderTTLJob(params OrderTTLJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("order repository required")
	}
	ttl := params.PendingTTL
	if ttl <= 0 {
		ttl = defaultOrderPendingTTL
	}
	return &orderTTLJob{
		logg: params.Logger,
		repo: params.Repository,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

type orderTTLJob struct {
	logg *logger.Logger
	repo orderTTLRepo
	ttl  time.Duration
	now  func() time.Time
}

func (j *orderTTLJob) Name() string { return "order-ttl" }

func (j *orderTTLJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.ttl)
	cancelled, err := j.repo.CancelPendingOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cancel stale pending orders: %w", err)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"orders_cancelled": cancelled,
		"cutoff":           cutoff,
	})
	j.logg.Info(logCtx, "order ttl sweep complete")
	return nil
}

package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/giftnest/giftnest-backend/pkg/logger"
)

const defaultCartStaleAfter = 30 * 24 * time.Hour

// CartCleanupJobParams configure the cart maintenance job.
type CartCleanupJobParams struct {
	Logger     *logger.Logger
	Repository cartCleanupRepo
	StaleAfter time.Duration
}

type cartCleanupRepo interface {
	PurgeEmptyLines(ctx context.Context) (int64, error)
	PurgeStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewCartCleanupJob builds the job that removes cart rows violating the
// persistence invariant (quantity 0 without a favourite mark) and rows
// untouched past the staleness window.
func NewCartCleanupJob(params CartCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	staleAfter := params.StaleAfter
	if staleAfter <= 0 {
		staleAfter = defaultCartStaleAfter
	}
	return &cartCleanupJob{
		logg:       params.Logger,
		repo:       params.Repository,
		staleAfter: staleAfter,
		now:        time.Now,
	}, nil
}

type cartCleanupJob struct {
	logg       *logger.Logger
	repo       cartCleanupRepo
	staleAfter time.Duration
	now        func() time.Time
}

func (j *cartCleanupJob) Name() string { return "cart-cleanup" }

func (j *cartCleanupJob) Run(ctx context.Context) error {
	empty, err := j.repo.PurgeEmptyLines(ctx)
	if err != nil {
		return fmt.Errorf("purge empty cart lines: %w", err)
	}

	cutoff := j.now().UTC().Add(-j.staleAfter)
	stale, err := j.repo.PurgeStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge stale cart lines: %w", err)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"empty_rows_deleted": empty,
		"stale_rows_deleted": stale,
		"cutoff":             cutoff,
	})
	j.logg.Info(logCtx, "cart cleanup complete")
	return nil
}

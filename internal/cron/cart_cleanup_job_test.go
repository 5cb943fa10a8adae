package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giftnest/giftnest-backend/pkg/logger"
)

type stubCartCleanupRepo struct {
	emptyDeleted int64
	staleDeleted int64
	emptyErr     error
	staleErr     error
	cutoffSeen   time.Time
}

func (s *stubCartCleanupRepo) PurgeEmptyLines(context.Context) (int64, error) {
	return s.emptyDeleted, s.emptyErr
}

func (s *stubCartCleanupRepo) PurgeStale(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoffSeen = cutoff
	return s.staleDeleted, s.staleErr
}

func TestCartCleanupJobRunsBothSweeps(t *testing.T) {
	repo := &stubCartCleanupRepo{emptyDeleted: 3, staleDeleted: 2}
	job, err := NewCartCleanupJob(CartCleanupJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "cron-test"}),
		Repository: repo,
		StaleAfter: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() != "cart-cleanup" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if time.Since(repo.cutoffSeen) < 24*time.Hour {
		t.Fatalf("expected cutoff at least a day back, got %v", repo.cutoffSeen)
	}
}

func TestCartCleanupJobPropagatesErrors(t *testing.T) {
	repo := &stubCartCleanupRepo{emptyErr: errors.New("boom")}
	job, err := NewCartCleanupJob(CartCleanupJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "cron-test"}),
		Repository: repo,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected purge error to propagate")
	}
}

func TestCartCleanupJobRequiresRepo(t *testing.T) {
	_, err := NewCartCleanupJob(CartCleanupJobParams{
		Logger: logger.New(logger.Options{ServiceName: "cron-test"}),
	})
	if err == nil {
		t.Fatal("expected missing repository to fail")
	}
}

package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
)

// StaleClaimReleaser returns outbox events stuck in PROCESSING to PENDING.
// An event gets stuck when a processor claims a batch and dies before
// publishing; without this sweep those events would never be retried.
type StaleClaimReleaser struct {
	outboxRepo repository.OutboxRepository
	logger     *zap.Logger
	interval   time.Duration
	staleAfter time.Duration
}

func NewStaleClaimReleaser(outboxRepo repository.OutboxRepository, logger *zap.Logger, cfg *conf.WorkerConfig) *StaleClaimReleaser {
	return &StaleClaimReleaser{
		outboxRepo: outboxRepo,
		logger:     logger.Named("StaleClaimReleaser"),
		interval:   time.Duration(cfg.StaleClaims.IntervalSeconds) * time.Second,
		staleAfter: time.Duration(cfg.StaleClaims.StaleAfterSeconds) * time.Second,
	}
}

func (r *StaleClaimReleaser) Start(ctx context.Context) {
	r.logger.Info("Stale claim releaser started", zap.Duration("interval", r.interval), zap.Duration("staleAfter", r.staleAfter))
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			released, err := r.outboxRepo.ReleaseStaleClaims(ctx, r.staleAfter)
			if err != nil {
				r.logger.Error("Failed to release stale claims", zap.Error(err))
				continue
			}
			if released > 0 {
				r.logger.Warn("Released stale outbox claims", zap.Int64("count", released))
			}
		case <-ctx.Done():
			r.logger.Info("Stale claim releaser shutting down")
			return
		}
	}
}

var _ Worker = (*StaleClaimReleaser)(nil)

package service

import (
	"context"
	"time"

	"github.com/reddaiahsirigireddy/shortt/internal/app/repository"
	"go.uber.org/zap"
)

// ClickPruner periodically deletes click events older than the configured
// retention window so the analytics table does not grow without bound.
type ClickPruner struct {
	logger    *zap.Logger
	repo      repository.ClickEventRepository
	retention time.Duration
	interval  time.Duration
	stopChan  chan struct{}
}

// NewClickPruner creates a pruner that keeps events for the given retention.
func NewClickPruner(logger *zap.Logger, repo repository.ClickEventRepository, retention time.Duration) *ClickPruner {
	return &ClickPruner{
		logger:    logger,
		repo:      repo,
		retention: retention,
		interval:  time.Hour,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the periodic pruning.
func (p *ClickPruner) Start() {
	go p.run()
}

// Stop stops the periodic pruning.
func (p *ClickPruner) Stop() {
	close(p.stopChan)
}

func (p *ClickPruner) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.prune()
		case <-p.stopChan:
			p.logger.Info("click pruner stopped")
			return
		}
	}
}

func (p *ClickPruner) prune() {
	ctx := context.Background()
	cutoff := cutoffBefore(time.Now(), p.retention)

	affected, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("failed to prune click events", zap.Error(err))
		return
	}

	if affected > 0 {
		p.logger.Info("pruned old click events",
			zap.Int64("count", affected),
			zap.Time("cutoff", cutoff),
		)
	}
}

func cutoffBefore(now time.Time, retention time.Duration) time.Time {
	return now.Add(-retention)
}

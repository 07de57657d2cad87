// Package worker runs the background settlement sweep that gives operators
// the ledger-side numbers to reconcile against provider statements.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Zxen1/Events-Platform-sub005/internal/ledger"
)

type SettlementSource interface {
	TotalsSince(ctx context.Context, since time.Time) ([]ledger.GatewaySettlement, error)
}

type Reconciler struct {
	source   SettlementSource
	interval time.Duration
	logger   *slog.Logger

	lastSweep time.Time
}

func NewReconciler(source SettlementSource, interval time.Duration, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

func (r *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.lastSweep = time.Now()
	r.logger.Info("starting settlement reconciler", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping settlement reconciler")
			return
		case <-ticker.C:
			r.run(ctx)
		}
	}
}

// RunOnce executes a single sweep.
func (r *Reconciler) RunOnce(ctx context.Context) {
	r.run(ctx)
}

func (r *Reconciler) run(ctx context.Context) {
	since := r.lastSweep
	now := time.Now()

	totals, err := r.source.TotalsSince(ctx, since)
	if err != nil {
		r.logger.Error("settlement sweep failed", "since", since, "error", err)
		return
	}
	r.lastSweep = now

	if len(totals) == 0 {
		r.logger.Info("settlement sweep: no transactions committed", "since", since)
		return
	}

	for _, t := range totals {
		r.logger.Info("settlement sweep",
			"gateway", t.Gateway,
			"since", since,
			"count", t.Count,
			"total", t.Total.StringFixed(2),
		)
	}
}

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds parallel subscription audits so the upstream
// inventory source is not overwhelmed.
const defaultConcurrency = 8

// InventorySource supplies raw inventory per subscription. Implemented by
// the Azure collector; faked in tests.
type InventorySource interface {
	CollectInventory(ctx context.Context, subscriptionID string) (RawInventory, error)
}

// Runner audits subscriptions in parallel. Each worker owns its partial
// result and its preassigned slot exclusively until the join point, so no
// locking is needed.
type Runner struct {
	source      InventorySource
	concurrency int
	subTimeout  time.Duration
	opts        Options
}

// NewRunner creates a runner over the given inventory source. Concurrency
// at or below zero selects the default bound.
func NewRunner(source InventorySource, concurrency int, subTimeout time.Duration, opts Options) *Runner {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Runner{
		source:      source,
		concurrency: concurrency,
		subTimeout:  subTimeout,
		opts:        opts,
	}
}

// Run audits every subscription and returns all partial results. Per-
// subscription failures and timeouts become error entries on that
// subscription's partial; they never abort siblings. Cancelling ctx stops
// dispatching new work, but partials already completed are still returned so
// progress is never discarded.
func (r *Runner) Run(ctx context.Context, subs []Subscription) []PartialResult {
	limit := r.concurrency
	if len(subs) < limit {
		limit = len(subs)
	}
	if limit < 1 {
		limit = 1
	}

	partials := make([]PartialResult, len(subs))

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, sub := range subs {
		i, sub := i, sub
		g.Go(func() error {
			partials[i] = r.auditOne(ctx, sub)
			return nil
		})
	}

	// Workers never return errors; the join point only transfers ownership.
	_ = g.Wait()

	return partials
}

func (r *Runner) auditOne(ctx context.Context, sub Subscription) PartialResult {
	if err := ctx.Err(); err != nil {
		return PartialResult{
			Subscription: sub,
			Errors:       []string{fmt.Sprintf("%s: audit cancelled: %v", sub.Name, err)},
		}
	}

	subCtx := ctx
	if r.subTimeout > 0 {
		var cancel context.CancelFunc
		subCtx, cancel = context.WithTimeout(ctx, r.subTimeout)
		defer cancel()
	}

	slog.Info("Auditing subscription", "subscription", sub.Name, "id", sub.ID)

	inv, err := r.source.CollectInventory(subCtx, sub.ID)
	if err != nil {
		slog.Warn("Inventory collection failed", "subscription", sub.Name, "error", err)
		return PartialResult{
			Subscription: sub,
			Errors:       []string{fmt.Sprintf("%s: collect inventory: %v", sub.Name, err)},
		}
	}

	return Audit(subCtx, sub, inv, r.opts)
}

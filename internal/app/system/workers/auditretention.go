// internal/app/system/workers/auditretention.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// DefaultRetentionInterval is how often AuditRetention prunes when no
// interval is given.
const DefaultRetentionInterval = time.Hour

// AuditRetention is a background worker that deletes audit events older
// than a maximum age.
type AuditRetention struct {
	events   *audit.Store
	log      *zap.Logger
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewAuditRetention creates a new retention worker.
//
// Parameters:
//   - events: the audit event store
//   - logger: zap logger for logging
//   - interval: how often to prune (e.g., 1 hour)
//   - maxAge: events older than this are deleted (e.g., 90 days)
func NewAuditRetention(events *audit.Store, logger *zap.Logger, interval, maxAge time.Duration) *AuditRetention {
	if interval <= 0 {
		interval = DefaultRetentionInterval
	}
	return &AuditRetention{
		events:   events,
		log:      logger,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start prunes once and then keeps pruning on every tick.
func (w *AuditRetention) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("audit retention worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("max_age", w.maxAge))
}

// Stop signals the worker to stop and waits for it to finish. It is safe
// to call more than once.
func (w *AuditRetention) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("audit retention worker stopped")
	})
}

func (w *AuditRetention) run() {
	defer w.wg.Done()

	w.prune()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.prune()
		}
	}
}

// prune deletes everything older than maxAge and returns the count.
func (w *AuditRetention) prune() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
	defer cancel()

	cutoff := w.now().Add(-w.maxAge)
	count, err := w.events.DeleteBefore(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to prune audit events", zap.Error(err))
		return 0
	}
	if count > 0 {
		w.log.Info("pruned audit events", zap.Int64("count", count), zap.Time("cutoff", cutoff))
	}
	return count
}

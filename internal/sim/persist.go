package sim

import (
	"context"
	"log"
	"time"

	"storefront-seeder/internal/core"

	"github.com/google/uuid"
)

// PersistStats counts what the persister wrote.
type PersistStats struct {
	Inserted        int
	Failed          int
	Batches         int
	FallbackBatches int
}

// Persister buffers orders and writes them in fixed-size batches. When a
// batch fails it retries the batch one row at a time so a bad row only
// loses itself.
type Persister struct {
	store     core.OrderService
	batchSize int
	log       *log.Logger
	pending   []core.Order
	stats     PersistStats
}

func NewPersister(store core.OrderService, batchSize int, logger *log.Logger) *Persister {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Persister{store: store, batchSize: batchSize, log: logger}
}

// Add queues an order and writes a batch once enough are queued. It returns
// the orders written by that batch, if any.
func (p *Persister) Add(ctx context.Context, o core.Order) ([]core.Order, error) {
	p.pending = append(p.pending, o)
	if len(p.pending) < p.batchSize {
		return nil, nil
	}
	return p.Flush(ctx)
}

// Flush writes whatever is queued. Only a cancelled context is returned as an
// error; row failures are logged and counted.
func (p *Persister) Flush(ctx context.Context) ([]core.Order, error) {
	if len(p.pending) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	batch := p.pending
	p.pending = nil
	p.stats.Batches++

	err := p.store.InsertOrders(ctx, batch)
	if err == nil {
		p.stats.Inserted += len(batch)
		return batch, nil
	}
	p.log.Printf("[PERSIST] batch of %d failed, retrying row by row: %v", len(batch), err)
	p.stats.FallbackBatches++

	inserted := make([]core.Order, 0, len(batch))
	for _, o := range batch {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}
		if err := p.store.InsertOrder(ctx, o); err != nil {
			p.stats.Failed++
			p.log.Printf("[PERSIST] order %s failed: %v", o.OrderNumber, err)
			continue
		}
		p.stats.Inserted++
		inserted = append(inserted, o)
	}
	return inserted, nil
}

func (p *Persister) Stats() PersistStats { return p.stats }

// CleanupStats reports the orphan sweep.
type CleanupStats struct {
	Checked int
	Removed int
	Skipped int
	Failed  int
}

// RemoveOrphans deletes the given customers that ended the run without an
// order. Each lookup or delete failure is logged and counted; the sweep only
// stops early when ctx is cancelled.
func RemoveOrphans(ctx context.Context, store core.CustomerService, ids []uuid.UUID, delay time.Duration, logger *log.Logger) (CleanupStats, error) {
	var stats CleanupStats
	for _, id := range ids {
		stats.Checked++
		count, err := store.CountOrdersForCustomer(ctx, id)
		if err != nil {
			stats.Failed++
			logger.Printf("[CLEANUP] failed to count orders for %s: %v", id, err)
			continue
		}
		if count > 0 {
			stats.Skipped++
			continue
		}
		if err := store.DeleteCustomer(ctx, id); err != nil {
			stats.Failed++
			logger.Printf("[CLEANUP] failed to delete customer %s: %v", id, err)
		} else {
			stats.Removed++
		}
		if err := sleepContext(ctx, delay); err != nil {
			return stats, err
		}
	}
	if stats.Removed > 0 || stats.Failed > 0 {
		logger.Printf("[CLEANUP] removed %d customers without orders (%d failed)", stats.Removed, stats.Failed)
	}
	return stats, nil
}

package workers

import (
	"context"
	"sync"
	"time"

	"zipbang_backend/internal/logger"
	"zipbang_backend/internal/repositories"

	"gorm.io/gorm"
)

// ViewWorker batches detail-page view hits and flushes them as increments on
// a ticker, keeping the hot read path free of writes.
type ViewWorker struct {
	db       *gorm.DB
	repo     repositories.ListingRepository
	interval time.Duration

	mu      sync.Mutex
	pending map[uint]int64
}

func NewViewWorker(db *gorm.DB, repo repositories.ListingRepository) *ViewWorker {
	return &ViewWorker{
		db:       db,
		repo:     repo,
		interval: 30 * time.Second,
		pending:  make(map[uint]int64),
	}
}

// Record notes one view hit. Safe for concurrent use.
func (w *ViewWorker) Record(listingID uint) {
	w.mu.Lock()
	w.pending[listingID]++
	w.mu.Unlock()
}

// Start runs the flush loop until the context is cancelled. A final flush
// runs on shutdown so counted hits are not lost.
func (w *ViewWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *ViewWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush()
			logger.Info("view worker stopped")
			return
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *ViewWorker) flush() {
	counts := w.drain()
	if len(counts) == 0 {
		return
	}

	err := w.repo.AddViews(w.db, counts)
	logger.WorkerLog("view_worker", "flush", err)
	if err != nil {
		// Put the counts back so the next tick retries them.
		w.mu.Lock()
		for id, n := range counts {
			w.pending[id] += n
		}
		w.mu.Unlock()
	}
}

// drain swaps out the pending counters.
func (w *ViewWorker) drain() map[uint]int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	counts := w.pending
	w.pending = make(map[uint]int64)
	return counts
}

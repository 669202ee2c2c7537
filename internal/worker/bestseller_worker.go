package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/service"
)

// BestSellerWorker keeps the best-seller cache warm on a fixed interval so
// the storefront rarely pays the aggregation query.
type BestSellerWorker struct {
	bestSellers *service.BestSellerService
	interval    time.Duration
}

// NewBestSellerWorker constructs a BestSellerWorker.
func NewBestSellerWorker(bestSellers *service.BestSellerService, interval time.Duration) *BestSellerWorker {
	return &BestSellerWorker{
		bestSellers: bestSellers,
		interval:    interval,
	}
}

// Start begins the warm loop and listens for context cancellation.
func (w *BestSellerWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting best seller worker")

	// Warm once on boot so the first request never misses.
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Best seller worker stopped")
			return
		}
	}
}

func (w *BestSellerWorker) run(ctx context.Context) {
	if err := w.bestSellers.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh best seller cache")
	}
}

package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/models"
	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/sse"
)

// LowStockWorker scans inventory on a fixed interval and alerts admins about
// products at or below their reorder level. Alerts are deduplicated against
// unread notifications so a product that stays low does not spam every scan.
type LowStockWorker struct {
	inventory     *service.InventoryService
	notifications *service.NotificationService
	notifier      sse.OrderNotifier
	interval      time.Duration
}

// NewLowStockWorker constructs a LowStockWorker.
func NewLowStockWorker(
	inventory *service.InventoryService,
	notifications *service.NotificationService,
	notifier sse.OrderNotifier,
	interval time.Duration,
) *LowStockWorker {
	return &LowStockWorker{
		inventory:     inventory,
		notifications: notifications,
		notifier:      notifier,
		interval:      interval,
	}
}

// Start begins the scan loop and listens for context cancellation.
func (w *LowStockWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting low stock worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Low stock worker stopped")
			return
		}
	}
}

func (w *LowStockWorker) run(ctx context.Context) {
	low, err := w.inventory.GetLowStock()
	if err != nil {
		log.Error().Err(err).Msg("Failed to scan low stock")
		return
	}

	for _, p := range low {
		message := fmt.Sprintf("%s is low on stock (%d left, reorder at %d)", p.Name, p.Quantity, p.ReorderLevel)
		w.notifications.NotifyAdminsOnce(models.NotificationLowStock, p.ProductID, message)
		w.notifier.NotifyLowStock(p.ProductID, message)
	}

	if len(low) > 0 {
		log.Info().Int("products", len(low)).Msg("Low stock scan completed")
	}
}

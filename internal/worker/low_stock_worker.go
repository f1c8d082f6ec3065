package worker

// low_stock_worker.go
// Processes low-stock notification jobs from QueueLowStock. Sends are wrapped
// in the SMTP circuit breaker so a downed relay fast-fails instead of blocking
// the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"shopforge/internal/infra"

	"github.com/rs/zerolog/log"
)

// LowStockPayload is the job envelope sent to QueueLowStock.
type LowStockPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	Threshold   int    `json:"threshold"`
}

// LowStockWorker sends threshold-crossing notifications to the alerts inbox.
type LowStockWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	to     string
}

func NewLowStockWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, alertsEmail string) *LowStockWorker {
	return &LowStockWorker{mailer: mailer, cb: cb, to: alertsEmail}
}

func (w *LowStockWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("low_stock_worker: invalid payload: %w", err)
	}
	if w.to == "" {
		log.Warn().Msg("low_stock_worker: no alerts email configured — skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendLowStockAlert(w.to, payload.ProductName, payload.Stock, payload.Threshold)
	})
	if err != nil {
		return fmt.Errorf("low_stock_worker: send alert for %s: %w", payload.ProductID, err)
	}

	log.Info().
		Str("product_id", payload.ProductID).
		Int("stock", payload.Stock).
		Int("threshold", payload.Threshold).
		Msg("low_stock_worker: alert sent")
	return nil
}

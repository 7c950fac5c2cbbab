package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts: when an order drives a
// product below its minimum stock, the admin inbox gets a replenishment
// nudge. Sends go through the SMTP circuit breaker; a breaker-open or send
// failure is returned to the pool so the job is retried and eventually
// dead-lettered.

import (
	"context"
	"encoding/json"
	"fmt"

	"zodiac/internal/infra"

	"github.com/rs/zerolog/log"
)

// LowStockAlertPayload is the job envelope sent to QueueAlerts.
type LowStockAlertPayload struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	StockCount   int    `json:"stock_count"`
	MinStock     int    `json:"min_stock"`
	SupplierName string `json:"supplier_name,omitempty"`
}

// AlertWorker sends low-stock notification emails.
type AlertWorker struct {
	mailer  *infra.Mailer
	cb      *infra.CircuitBreaker
	alertTo string
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, alertTo string) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, alertTo: alertTo}
}

// Process sends one alert email. A non-nil return means "retry me".
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Malformed payloads are not retryable — log and drop.
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil
	}
	if w.alertTo == "" {
		log.Warn().Msg("alert_worker: no alert recipient configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%d left, minimum %d)",
		payload.ProductName, payload.StockCount, payload.MinStock)
	body := fmt.Sprintf(
		"Product %q has dropped to %d units (minimum %d).\n",
		payload.ProductName, payload.StockCount, payload.MinStock)
	if payload.SupplierName != "" {
		body += fmt.Sprintf("Supplier: %s. Consider placing a restock request.\n", payload.SupplierName)
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendAlert(w.alertTo, subject, body, "")
	})
	if err != nil {
		log.Error().Err(err).Str("product", payload.ProductName).Msg("alert_worker: send failed")
		return err
	}
	log.Info().Str("product", payload.ProductName).Msg("alert_worker: low-stock alert sent")
	return nil
}

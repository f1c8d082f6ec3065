package worker

// digest_cron.go
// Background goroutine that periodically emails a summary of every product
// currently at or below its alert threshold. The point-in-time alert emails
// catch individual crossings; the digest catches anything that slipped by
// (e.g. alerts created after the stock already dropped).

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopforge/internal/dto"
	"shopforge/internal/infra"

	"github.com/rs/zerolog/log"
)

const defaultDigestInterval = 24 * time.Hour

// LowStockSource yields the products currently below threshold. Satisfied by
// the report service; declared here so the cron does not depend on it.
type LowStockSource interface {
	LowStock(ctx context.Context) (*dto.LowStockReport, error)
}

// DigestCronConfig holds all dependencies for the digest goroutine.
type DigestCronConfig struct {
	Source    LowStockSource
	Mailer    *infra.Mailer
	CB        *infra.CircuitBreaker
	To        string
	StoreName string
	Interval  time.Duration
}

// StartDigestCron launches a background goroutine that ticks on the configured
// interval and emails the low-stock digest. It respects the context for
// graceful shutdown.
func StartDigestCron(ctx context.Context, cfg DigestCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultDigestInterval
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("digest_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("digest_cron: shutting down")
				return
			case <-ticker.C:
				sendDigest(ctx, cfg)
			}
		}
	}()
}

func sendDigest(ctx context.Context, cfg DigestCronConfig) {
	if cfg.To == "" {
		return
	}
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("digest_cron: circuit breaker is open, skipping tick")
		return
	}

	report, err := cfg.Source.LowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("digest_cron: failed to query low stock")
		return
	}
	if len(report.Products) == 0 {
		return
	}

	subject := fmt.Sprintf("[%s] Low stock digest: %d product(s) below threshold", cfg.StoreName, len(report.Products))
	body := buildDigestBody(report)

	cbErr := cfg.CB.Execute(func() error {
		return cfg.Mailer.SendDigest(cfg.To, subject, body)
	})
	if cbErr != nil {
		log.Error().Err(cbErr).Msg("digest_cron: failed to send digest")
		return
	}

	log.Info().Int("count", len(report.Products)).Msg("digest_cron: digest sent")
}

func buildDigestBody(report *dto.LowStockReport) string {
	var b strings.Builder
	b.WriteString("The following products are at or below their alert threshold:\n\n")
	for _, p := range report.Products {
		fmt.Fprintf(&b, "  - %s: %d in stock (threshold %d, level %s)\n",
			p.ProductName, p.Stock, p.Threshold, p.Level)
	}
	b.WriteString("\nReview the inventory dashboard for details.\n")
	return b.String()
}

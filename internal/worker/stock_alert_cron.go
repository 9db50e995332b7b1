package worker

// stock_alert_cron.go
// Background goroutine that periodically looks for products whose warehouse
// stock fell to the alert threshold and emails the owner once per product
// per day.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eskimo/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StockAlertConfig holds all dependencies for the alert goroutine.
type StockAlertConfig struct {
	Productos    repository.ProductoRepository
	RDB          *redis.Client
	Dispatcher   *Dispatcher
	Umbral       int
	Intervalo    time.Duration
	Destinatario string
}

// StartStockAlertCron ticks every cfg.Intervalo until ctx is cancelled. It
// reports whether the goroutine was started.
func StartStockAlertCron(ctx context.Context, cfg StockAlertConfig) bool {
	if cfg.Destinatario == "" {
		log.Info().Msg("stock_alert_cron: ALERT_EMAIL empty, not started")
		return false
	}
	if cfg.Intervalo <= 0 {
		log.Error().Dur("interval", cfg.Intervalo).Msg("stock_alert_cron: interval must be positive, not started")
		return false
	}
	go func() {
		ticker := time.NewTicker(cfg.Intervalo)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Intervalo).Int("threshold", cfg.Umbral).Msg("stock_alert_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stock_alert_cron: shutting down")
				return
			case now := <-ticker.C:
				if _, err := revisarStock(ctx, cfg, now); err != nil {
					log.Error().Err(err).Msg("stock_alert_cron: check failed")
				}
			}
		}
	}()
	return true
}

// revisarStock enqueues one email listing the low-stock products not yet
// reported today. It returns how many products were reported.
func revisarStock(ctx context.Context, cfg StockAlertConfig, now time.Time) (int, error) {
	productos, err := cfg.Productos.ListBajoStock(ctx, cfg.Umbral)
	if err != nil {
		return 0, err
	}

	dia := now.Format("2006-01-02")
	var lineas, claves []string
	for _, p := range productos {
		key := fmt.Sprintf("alerta_stock:%d:%s", p.ID, dia)
		nuevo, err := cfg.RDB.SetNX(ctx, key, 1, 24*time.Hour).Result()
		if err != nil {
			liberarClaves(ctx, cfg.RDB, claves)
			return 0, err
		}
		if nuevo {
			claves = append(claves, key)
			lineas = append(lineas, fmt.Sprintf("- %s: %d unidades", p.Nombre, p.Cantidad))
		}
	}
	if len(lineas) == 0 {
		return 0, nil
	}

	err = cfg.Dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: cfg.Destinatario,
		Subject: fmt.Sprintf("Alerta de stock: %d productos con poco stock", len(lineas)),
		Body:    "Los siguientes productos tienen poco stock en bodega:\n\n" + strings.Join(lineas, "\n"),
	})
	if err != nil {
		// the products were not reported; let the next tick try again
		liberarClaves(ctx, cfg.RDB, claves)
		return 0, err
	}
	log.Info().Int("productos", len(lineas)).Msg("stock_alert_cron: alert enqueued")
	return len(lineas), nil
}

func liberarClaves(ctx context.Context, rdb *redis.Client, claves []string) {
	if len(claves) == 0 {
		return
	}
	if err := rdb.Del(context.WithoutCancel(ctx), claves...).Err(); err != nil {
		log.Error().Err(err).Strs("keys", claves).Msg("stock_alert_cron: could not release dedup keys")
	}
}

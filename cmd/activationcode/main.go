// cmd/activationcode/main.go: prints a single-use activation code that
// extends the subscription. The secret must match BILLING_SECRET of the
// target deployment.
// Uso: BILLING_SECRET=... go run ./cmd/activationcode -days 30
package main

import (
	"flag"
	"fmt"
	"time"

	"eskimo/internal/config"
	"eskimo/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	dias := flag.Int("days", 30, "days added to the subscription")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *dias <= 0 {
		log.Fatal().Int("days", *dias).Msg("-days must be positive")
	}

	code, err := service.GenerarCodigoActivacion(cfg.BillingSecret, *dias, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign code")
	}
	fmt.Println(code)
}

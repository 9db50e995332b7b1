// cmd/seeduser/main.go: creates or resets an admin account.
// Uso: go run ./cmd/seeduser -email admin@eskimo.local -password secreto
package main

import (
	"context"
	"flag"
	"strings"

	"eskimo/internal/config"
	"eskimo/internal/infra"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "admin@eskimo.local", "login e-mail")
	password := flag.String("password", "", "password (min 6 chars)")
	nombre := flag.String("name", "Administrador", "display name")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal().Msg("-password must have at least 6 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuarios (nombre, email, password_hash, rol)
		VALUES (?, ?, ?, 'admin')
		ON CONFLICT ((LOWER(email))) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    nombre = EXCLUDED.nombre,
		    rol = 'admin',
		    activo = true,
		    updated_at = NOW()
	`, *nombre, strings.ToLower(strings.TrimSpace(*email)), string(hash))
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("insert error")
	}
	log.Info().Str("email", *email).Msg("admin user created or updated")
}

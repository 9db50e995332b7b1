package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eskimo/internal/dto"
	"eskimo/internal/infra"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	billingCacheKey = "billing:estado"
	billingCacheTTL = 5 * time.Minute

	// vigenciaCodigo is how long an unredeemed activation code stays valid.
	vigenciaCodigo = 30 * 24 * time.Hour
)

type BillingService interface {
	Estado(ctx context.Context) (*dto.EstadoSuscripcionResponse, error)
	Activar(ctx context.Context, req dto.ActivarSuscripcionRequest) (*dto.EstadoSuscripcionResponse, error)
}

type billingService struct {
	repo   repository.SuscripcionRepository
	rdb    *redis.Client
	secret string
	now    func() time.Time
}

// NewBillingService accepts a nil rdb; the status is then read from the DB on
// every call.
func NewBillingService(repo repository.SuscripcionRepository, rdb *redis.Client, secret string) BillingService {
	return &billingService{repo: repo, rdb: rdb, secret: secret, now: time.Now}
}

// Estado reports whether the subscription is active. A missing row counts as
// expired.
func (s *billingService) Estado(ctx context.Context) (*dto.EstadoSuscripcionResponse, error) {
	var expira time.Time
	if s.rdb != nil {
		var cached dto.EstadoSuscripcionResponse
		if err := infra.GetJSON(ctx, s.rdb, billingCacheKey, &cached); err == nil {
			return s.estado(cached.ExpiresAt), nil
		}
	}

	sus, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, err
	default:
		expira = sus.ExpiraEn
	}

	resp := s.estado(expira)
	if s.rdb != nil {
		// Best effort
		if err := infra.SetJSON(ctx, s.rdb, billingCacheKey, resp, billingCacheTTL); err != nil {
			log.Warn().Err(err).Msg("billing: cache write failed")
		}
	}
	return resp, nil
}

// estado derives msg from the expiry so a cached value never reports active
// past its deadline.
func (s *billingService) estado(expira time.Time) *dto.EstadoSuscripcionResponse {
	msg := dto.SuscripcionVencida
	if (model.Suscripcion{ExpiraEn: expira}).Activa(s.now()) {
		msg = dto.SuscripcionActiva
	}
	return &dto.EstadoSuscripcionResponse{Msg: msg, ExpiresAt: expira}
}

// Activar redeems an activation code. Codes are single-use: the jti is
// stored and a second redemption is a conflict.
func (s *billingService) Activar(ctx context.Context, req dto.ActivarSuscripcionRequest) (*dto.EstadoSuscripcionResponse, error) {
	jti, dias, err := s.parseCodigo(req.Token)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var expira time.Time
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.InsertTokenTx(tx, &model.TokenActivacion{JTI: jti, Dias: dias, UsadoEn: now}); err != nil {
			if esDuplicado(err) {
				return fmt.Errorf("%w: el codigo de activacion ya fue utilizado", ErrConflicto)
			}
			return err
		}

		sus, err := s.repo.GetForUpdateTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sus, err = &model.Suscripcion{ID: model.SuscripcionID}, nil
		}
		if err != nil {
			return err
		}
		desde := now
		if sus.ExpiraEn.After(now) {
			desde = sus.ExpiraEn
		}
		sus.ExpiraEn = desde.AddDate(0, 0, dias)
		expira = sus.ExpiraEn
		return s.repo.SaveTx(tx, sus)
	})
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, billingCacheKey).Err(); err != nil {
			log.Warn().Err(err).Msg("billing: cache invalidation failed")
		}
	}
	log.Info().Str("jti", jti).Int("dias", dias).Time("expira", expira).Msg("suscripcion extendida")
	return s.estado(expira), nil
}

func (s *billingService) parseCodigo(codigo string) (string, int, error) {
	invalido := fmt.Errorf("%w: codigo de activacion invalido", ErrValidacion)
	if s.secret == "" {
		return "", 0, invalido
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(codigo, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", 0, invalido
	}

	jti, _ := claims["jti"].(string)
	dias, _ := claims["dias"].(float64)
	if jti == "" || dias < 1 || dias != float64(int(dias)) {
		return "", 0, invalido
	}
	return jti, int(dias), nil
}

// GenerarCodigoActivacion signs a single-use code that extends the
// subscription by dias days.
func GenerarCodigoActivacion(secret string, dias int, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("billing: BILLING_SECRET vacio")
	}
	if dias < 1 {
		return "", fmt.Errorf("billing: dias debe ser mayor a cero, recibido %d", dias)
	}
	claims := jwt.MapClaims{
		"jti":  uuid.NewString(),
		"dias": dias,
		"iat":  now.Unix(),
		"exp":  now.Add(vigenciaCodigo).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

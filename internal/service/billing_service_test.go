package service

import (
	"context"
	"testing"
	"time"

	"eskimo/internal/dto"
	"eskimo/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBillingSecret = "billing-secret"

func newBillingSvc(t *testing.T, repo *stubSuscripcionRepo, now time.Time) (*billingService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	svc := NewBillingService(repo, rdb, testBillingSecret).(*billingService)
	svc.now = func() time.Time { return now }
	return svc, mr
}

func TestEstado_SinSuscripcionEsVencida(t *testing.T) {
	repo := &stubSuscripcionRepo{memStore: newMemStore()}
	svc := NewBillingService(repo, nil, testBillingSecret)

	resp, err := svc.Estado(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.SuscripcionVencida, resp.Msg)
}

func TestEstado_CacheEnRedis(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubSuscripcionRepo{memStore: newMemStore()}
	require.NoError(t, repo.EnsureTrial(context.Background(), 30, now))
	svc, mr := newBillingSvc(t, repo, now)
	ctx := context.Background()

	resp, err := svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.SuscripcionActiva, resp.Msg)
	assert.True(t, mr.Exists(billingCacheKey))

	_, err = svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)

	// cached expiry is re-evaluated against the clock
	svc.now = func() time.Time { return now.AddDate(0, 0, 31) }
	resp, err = svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.SuscripcionVencida, resp.Msg)
	assert.Equal(t, 1, repo.gets)

	mr.FastForward(billingCacheTTL + time.Second)
	_, err = svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.gets)
}

func TestActivar_ExtiendeDesdeVencimiento(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	m := newMemStore()
	m.suscripcion = &model.Suscripcion{ID: model.SuscripcionID, ExpiraEn: now.AddDate(0, 0, 5)}
	repo := &stubSuscripcionRepo{memStore: m}
	svc, mr := newBillingSvc(t, repo, now)
	ctx := context.Background()

	_, err := svc.Estado(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(billingCacheKey))

	codigo, err := GenerarCodigoActivacion(testBillingSecret, 30, now)
	require.NoError(t, err)

	resp, err := svc.Activar(ctx, dto.ActivarSuscripcionRequest{Token: codigo})
	require.NoError(t, err)
	assert.Equal(t, dto.SuscripcionActiva, resp.Msg)
	assert.Equal(t, now.AddDate(0, 0, 35), resp.ExpiresAt)
	assert.False(t, mr.Exists(billingCacheKey))

	_, err = svc.Activar(ctx, dto.ActivarSuscripcionRequest{Token: codigo})
	assert.ErrorIs(t, err, ErrConflicto)
}

func TestActivar_VencidaExtiendeDesdeAhora(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	m := newMemStore()
	m.suscripcion = &model.Suscripcion{ID: model.SuscripcionID, ExpiraEn: now.AddDate(0, -2, 0)}
	svc, _ := newBillingSvc(t, &stubSuscripcionRepo{memStore: m}, now)

	codigo, err := GenerarCodigoActivacion(testBillingSecret, 10, now)
	require.NoError(t, err)
	resp, err := svc.Activar(context.Background(), dto.ActivarSuscripcionRequest{Token: codigo})
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 10), resp.ExpiresAt)
}

func TestActivar_CodigosInvalidos(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newBillingSvc(t, &stubSuscripcionRepo{memStore: newMemStore()}, now)
	ctx := context.Background()

	otroSecreto, err := GenerarCodigoActivacion("otro", 30, now)
	require.NoError(t, err)
	vencido, err := GenerarCodigoActivacion(testBillingSecret, 30, now.AddDate(0, -2, 0))
	require.NoError(t, err)
	sinDias, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"jti": "x"}).SignedString([]byte(testBillingSecret))
	require.NoError(t, err)

	for name, codigo := range map[string]string{
		"basura":       "no-es-un-jwt",
		"otro secreto": otroSecreto,
		"vencido":      vencido,
		"sin dias":     sinDias,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Activar(ctx, dto.ActivarSuscripcionRequest{Token: codigo})
			assert.ErrorIs(t, err, ErrValidacion)
		})
	}
}

func TestGenerarCodigoActivacion_Validaciones(t *testing.T) {
	_, err := GenerarCodigoActivacion("", 30, time.Now())
	assert.Error(t, err)
	_, err = GenerarCodigoActivacion("s", 0, time.Now())
	assert.Error(t, err)
}

package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"eskimo/internal/apierror"
	"eskimo/internal/carrito"
	"eskimo/internal/dto"
	"eskimo/internal/middleware"
	"eskimo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

// parseID reads a numeric path parameter. It writes a 400 and returns false
// when the value is not a positive integer.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

// rangoFechas resolves the startDate/endDate query of the current request.
func rangoFechas(c *gin.Context) (dto.RangoFechas, bool) {
	var q dto.RangoFechasQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return dto.RangoFechas{}, false
	}
	rango, err := q.Resolver(time.Now())
	if err != nil {
		responderError(c, err)
		return dto.RangoFechas{}, false
	}
	return rango, true
}

// responderError maps domain errors to HTTP status codes. Unknown errors are
// logged and answered with a generic 500.
func responderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNoEncontrado), errors.Is(err, carrito.ErrItemNoEncontrado):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflicto), errors.Is(err, service.ErrStockInsuficiente),
		errors.Is(err, carrito.ErrStockInsuficiente), errors.Is(err, carrito.ErrEmpleadoBloqueado):
		status = http.StatusConflict
	case errors.Is(err, service.ErrCredenciales):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrSuscripcionVencida):
		status = http.StatusPaymentRequired
	case errors.Is(err, service.ErrValidacion), errors.Is(err, dto.ErrRangoInvalido),
		errors.Is(err, carrito.ErrSinEmpleado), errors.Is(err, carrito.ErrCantidadInvalida),
		errors.Is(err, carrito.ErrPrecioInvalido), errors.Is(err, carrito.ErrCarritoVacio):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(status, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}

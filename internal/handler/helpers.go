package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/apierror"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/service"
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
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service errors onto HTTP statuses:
// conflicts 409, not-found 404, validation 422, everything else 500.
func respondError(c *gin.Context, err error) {
	var ev *service.ErrValidacion
	switch {
	case errors.Is(err, service.ErrTurnoAbiertoExiste),
		errors.Is(err, service.ErrCorteZExiste),
		errors.Is(err, service.ErrCajaOcupada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrTurnoNoEncontrado),
		errors.Is(err, service.ErrCorteNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrTurnoNoCerrado),
		errors.Is(err, service.ErrVentaSinTurno):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &ev):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{ev.Campo: ev.Detalle}))
	default:
		// the ErrorHandler middleware logs it and writes the safe 500
		_ = c.Error(err)
		c.Abort()
	}
}

// parseIDParam parses a path parameter as UUID, writing the 400 itself.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(name+" invalido"))
		return uuid.Nil, false
	}
	return id, true
}

package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apierror"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
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

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

// respondError translates business errors into HTTP responses.
// apperr messages are written for clients; anything else becomes a generic
// 500 and the original error is attached to the context for the ErrorHandler
// middleware to log.
func respondError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindValidacion:
			c.JSON(http.StatusBadRequest, apierror.New(ae.Msg))
		case apperr.KindAutorizacion:
			c.JSON(http.StatusForbidden, apierror.New(ae.Msg))
		case apperr.KindNoEncontrado:
			c.JSON(http.StatusNotFound, apierror.New(ae.Msg))
		case apperr.KindConflicto:
			c.JSON(http.StatusConflict, apierror.New(ae.Msg))
		case apperr.KindStockInsuficiente:
			c.JSON(http.StatusConflict, apierror.Warning(ae.Msg))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(ae.Msg))
		}
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
}

package handler

import (
	"io"
	"net/http"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apierror"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/infra"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/middleware"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"

	"github.com/gin-gonic/gin"
)

type ReparacionesHandler struct {
	svc     service.ReparacionService
	storage *infra.FotoStorage
}

func NewReparacionesHandler(svc service.ReparacionService, storage *infra.FotoStorage) *ReparacionesHandler {
	return &ReparacionesHandler{svc: svc, storage: storage}
}

// Agregar godoc
// @Summary      Registrar intervención de reparación
// @Description  Agrega una entrada a la bitácora del dispositivo y sincroniza el estado del equipo con la entrada.
// @Tags         reparaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                       true "ID del dispositivo"
// @Param        body body dto.CrearReparacionRequest true "Detalle de la intervención"
// @Success      201  {object} dto.ReparacionResponse
// @Failure      403  {object} apierror.APIError
// @Router       /v1/dispositivos/{id}/reparaciones [post]
func (h *ReparacionesHandler) Agregar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.CrearReparacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), middleware.ActorDe(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConsumirComponente godoc
// @Summary      Consumir componente de stock
// @Description  Descuenta stock de forma atómica, acumula el uso sobre la reparación y suma el precio del componente al costo.
// @Tags         reparaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                          true "ID de la reparación"
// @Param        body body dto.ConsumirComponenteRequest true "Componente y cantidad"
// @Success      200  {object} dto.ReparacionResponse
// @Failure      409  {object} apierror.APIError "Stock insuficiente"
// @Router       /v1/reparaciones/{id}/componentes [post]
func (h *ReparacionesHandler) ConsumirComponente(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ConsumirComponenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConsumirComponente(c.Request.Context(), middleware.ActorDe(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReparacionesHandler) EditarCosto(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.EditarCostoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EditarCosto(c.Request.Context(), middleware.ActorDe(c), id, *req.NuevoCosto); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReparacionesHandler) EditarPrecio(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.EditarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EditarPrecio(c.Request.Context(), middleware.ActorDe(c), id, *req.NuevoPrecio); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubirFoto attaches a single photo to a repair entry.
func (h *ReparacionesHandler) SubirFoto(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se adjuntó la foto"))
		return
	}
	if fh.Size > maxFotoBytes {
		c.JSON(http.StatusBadRequest, apierror.New("La foto supera el tamaño máximo permitido"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		respondError(c, err)
		return
	}
	nombre, err := h.storage.SubirFoto(c.Request.Context(), data, fh.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.AgregarFoto(c.Request.Context(), id, nombre); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"foto": nombre})
}

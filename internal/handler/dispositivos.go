package handler

import (
	"io"
	"net/http"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apierror"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/infra"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/middleware"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"

	"github.com/gin-gonic/gin"
)

const maxFotoBytes = 8 << 20 // 8 MiB per file

type DispositivosHandler struct {
	svc     service.DispositivoService
	repSvc  service.ReparacionService
	storage *infra.FotoStorage
}

func NewDispositivosHandler(svc service.DispositivoService, repSvc service.ReparacionService, storage *infra.FotoStorage) *DispositivosHandler {
	return &DispositivosHandler{svc: svc, repSvc: repSvc, storage: storage}
}

// Crear godoc
// @Summary      Registrar ingreso de dispositivo
// @Description  Da de alta un dispositivo con su código de seguimiento OT-<timestamp> en estado Ingresado.
// @Tags         dispositivos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearDispositivoRequest true "Datos del equipo y del cliente"
// @Success      201  {object} dto.DispositivoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/dispositivos [post]
func (h *DispositivosHandler) Crear(c *gin.Context) {
	var req dto.CrearDispositivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.ActorDe(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar dispositivos priorizados
// @Description  Lista ordenada: primero Terminados dentro de la ventana de garantía, luego Terminados vencidos, después el resto. El parámetro query busca por ID exacto o por texto.
// @Tags         dispositivos
// @Produce      json
// @Security     BearerAuth
// @Param        query query string false "ID numérico o texto (código, cliente, documento, marca, modelo)"
// @Success      200 {array} dto.DispositivoListItem
// @Router       /v1/dispositivos [get]
func (h *DispositivosHandler) Listar(c *gin.Context) {
	var filtro dto.DispositivoFilter
	if err := c.ShouldBindQuery(&filtro); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DispositivosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DispositivosHandler) AsignarTecnico(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.AsignarTecnicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AsignarTecnico(c.Request.Context(), middleware.ActorDe(c), id, req.TecnicoID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado del dispositivo
// @Description  Transición manual de estado. Los técnicos solo pueden usar Observacion, Reparacion y Terminado.
// @Tags         dispositivos
// @Security     BearerAuth
// @Param        id   path int                        true "ID del dispositivo"
// @Param        body body dto.ActualizarEstadoRequest true "Nuevo estado"
// @Success      204
// @Failure      403 {object} apierror.APIError
// @Router       /v1/dispositivos/{id}/estado [put]
func (h *DispositivosHandler) ActualizarEstado(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarEstado(c.Request.Context(), middleware.ActorDe(c), id, model.Estado(req.Estado)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarcarEntregado registra la entrega al cliente con el precio final cobrado.
func (h *DispositivosHandler) MarcarEntregado(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.MarcarEntregadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.MarcarEntregado(c.Request.Context(), middleware.ActorDe(c), id, *req.PrecioFinal); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Revertir deshace una entrega registrada por error. Solo admin.
func (h *DispositivosHandler) Revertir(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RevertirEstado(c.Request.Context(), middleware.ActorDe(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DispositivosHandler) Eliminar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), middleware.ActorDe(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubirFotos receives multipart files, stores them in MinIO and appends the
// generated names to the device, preserving upload order.
func (h *DispositivosHandler) SubirFotos(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Formulario multipart invalido"))
		return
	}
	files := form.File["fotos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("No se adjuntaron fotos"))
		return
	}

	nombres := make([]string, 0, len(files))
	for _, fh := range files {
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
		nombres = append(nombres, nombre)
	}

	if err := h.svc.AgregarFotos(c.Request.Context(), id, nombres); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"fotos": nombres})
}

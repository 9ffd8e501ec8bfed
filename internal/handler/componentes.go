package handler

import (
	"net/http"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/middleware"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"

	"github.com/gin-gonic/gin"
)

type ComponentesHandler struct{ svc service.ComponenteService }

func NewComponentesHandler(svc service.ComponenteService) *ComponentesHandler {
	return &ComponentesHandler{svc: svc}
}

func (h *ComponentesHandler) Crear(c *gin.Context) {
	var req dto.CrearComponenteRequest
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

func (h *ComponentesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Disponibles lists only components with stock on hand, for the repair form.
func (h *ComponentesHandler) Disponibles(c *gin.Context) {
	resp, err := h.svc.ListarDisponibles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

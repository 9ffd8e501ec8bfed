package handler

import (
	"net/http"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/middleware"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Ingresos godoc
// @Summary      Reporte de ingresos y ganancias
// @Description  Agrupa los dispositivos entregados por mes, semana ISO y día. Ganancia = precio final - suma de costos de reparación.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ReporteIngresosResponse
// @Failure      403 {object} apierror.APIError
// @Router       /v1/reportes/ingresos [get]
func (h *ReportesHandler) Ingresos(c *gin.Context) {
	resp, err := h.svc.Ingresos(c.Request.Context(), middleware.ActorDe(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

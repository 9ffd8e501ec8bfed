package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/apierror"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/dto"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/infra"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/repository"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Short TTL: the state can change while the customer is watching the page.
const seguimientoCacheTTL = 60 * time.Second

// SeguimientoHandler serves the public tracking endpoints.
// No authentication required — read only, no side effects.
type SeguimientoHandler struct {
	repo   repository.DispositivoRepository
	rdb    *redis.Client
	domain string
}

func NewSeguimientoHandler(repo repository.DispositivoRepository, rdb *redis.Client, domain string) *SeguimientoHandler {
	return &SeguimientoHandler{repo: repo, rdb: rdb, domain: domain}
}

// Consultar godoc
// @Summary Consulta pública de estado (sin autenticacion)
// @Description Requiere el código de seguimiento y el documento del cliente. Ambos deben corresponder al mismo equipo.
// @Tags seguimiento
// @Accept json
// @Produce json
// @Param body body dto.ConsultaSeguimientoRequest true "Código y documento"
// @Success 200 {object} dto.EstadoPublicoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/seguimiento [post]
func (h *SeguimientoHandler) Consultar(c *gin.Context) {
	var req dto.ConsultaSeguimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if !req.AceptaTerminos {
		c.JSON(http.StatusBadRequest, apierror.New("Debe aceptar los términos de consulta"))
		return
	}

	d, err := h.repo.FindByCodigoYDocumento(c.Request.Context(), req.CodigoSeguimiento, req.ClienteDocumento)
	if err != nil {
		// Same answer for wrong code and wrong document
		c.JSON(http.StatusNotFound, apierror.New("No se encontró un equipo con ese código y documento"))
		return
	}
	c.JSON(http.StatusOK, estadoPublicoDe(d))
}

// Estado godoc
// @Summary Estado por código de seguimiento (sin autenticacion)
// @Tags seguimiento
// @Produce json
// @Param codigo path string true "Código OT-..."
// @Success 200 {object} dto.EstadoPublicoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/seguimiento/{codigo} [get]
func (h *SeguimientoHandler) Estado(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "seguimiento:" + codigo

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.EstadoPublicoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	d, err := h.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Código de seguimiento no encontrado"))
		return
	}

	resp := estadoPublicoDe(d)

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, seguimientoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

// Ticket returns the intake ticket data with the QR encoded inline.
func (h *SeguimientoHandler) Ticket(c *gin.Context) {
	d, ok := h.dispositivoDelTicket(c)
	if !ok {
		return
	}
	url := h.urlSeguimiento(d.CodigoSeguimiento)
	qr, err := infra.GenerarQRSeguimiento(url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TicketResponse{
		CodigoSeguimiento: d.CodigoSeguimiento,
		ClienteNombre:     d.ClienteNombre,
		Marca:             d.Marca,
		Modelo:            d.Modelo,
		FechaRecepcion:    d.FechaRecepcion.Format(time.RFC3339),
		FinGarantia:       service.FinGarantia(d.FechaRecepcion).Format("2006-01-02"),
		URLSeguimiento:    url,
		QRPNG:             base64.StdEncoding.EncodeToString(qr),
	})
}

// TicketPDF streams the printable A7 drop-off receipt.
func (h *SeguimientoHandler) TicketPDF(c *gin.Context) {
	d, ok := h.dispositivoDelTicket(c)
	if !ok {
		return
	}
	pdf, err := infra.GenerarTicketPDF(d, h.urlSeguimiento(d.CodigoSeguimiento))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="ticket_%s.pdf"`, d.CodigoSeguimiento))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *SeguimientoHandler) dispositivoDelTicket(c *gin.Context) (*model.Dispositivo, bool) {
	codigo := c.Param("codigo")
	d, err := h.repo.FindByCodigo(c.Request.Context(), codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Código de seguimiento no encontrado"))
		return nil, false
	}
	return d, true
}

func (h *SeguimientoHandler) urlSeguimiento(codigo string) string {
	return fmt.Sprintf("%s/v1/seguimiento/%s", h.domain, codigo)
}

func estadoPublicoDe(d *model.Dispositivo) dto.EstadoPublicoResponse {
	return dto.EstadoPublicoResponse{
		CodigoSeguimiento: d.CodigoSeguimiento,
		Marca:             d.Marca,
		Modelo:            d.Modelo,
		EstadoActual:      d.EstadoActual.String(),
		FechaRecepcion:    d.FechaRecepcion.Format("2006-01-02"),
		AvisoGarantia:     service.MensajeGarantia(d, time.Now()),
		DiasGarantia:      model.DiasGarantia,
	}
}

package worker

// aviso_worker.go
// Processes pickup-notice jobs from QueueAvisos: mails the customer that
// their device reached Terminado and the warranty pickup window is running.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/infra"
	"github.com/YoyiDev28/servicio-tecnico-proyecto-publico/internal/model"

	"github.com/rs/zerolog/log"
)

type AvisoWorker struct {
	mailer *infra.Mailer
	domain string
}

func NewAvisoWorker(mailer *infra.Mailer, domain string) *AvisoWorker {
	return &AvisoWorker{mailer: mailer, domain: domain}
}

func (w *AvisoWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload AvisoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("aviso_worker: invalid payload")
		return
	}
	if payload.Para == "" {
		log.Warn().Msg("aviso_worker: empty recipient — skipping")
		return
	}

	asunto := fmt.Sprintf("Tu %s %s está listo para retirar (%s)",
		payload.Marca, payload.Modelo, payload.CodigoSeguimiento)
	cuerpo := fmt.Sprintf(
		"Hola %s:\n\nTu dispositivo %s %s ya está reparado y listo para retirar.\n\n"+
			"Podés seguir el estado en %s/v1/seguimiento/%s\n\n"+
			"Recordá que tenés %d días para retirarlo y conservar la garantía.\n",
		payload.ClienteNombre, payload.Marca, payload.Modelo,
		w.domain, payload.CodigoSeguimiento, model.DiasGarantia)

	if !w.mailer.Configurado() {
		log.Info().Str("to", payload.Para).Str("codigo", payload.CodigoSeguimiento).
			Msg("aviso_worker: SMTP no configurado — aviso registrado sin enviar")
		return
	}

	if err := w.mailer.EnviarAviso(payload.Para, asunto, cuerpo); err != nil {
		log.Error().Err(err).Str("to", payload.Para).Msg("aviso_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.Para).Str("codigo", payload.CodigoSeguimiento).
		Msg("aviso_worker: aviso enviado")
}

package worker

// resumen_worker.go
// Processes close-of-shift summary jobs from QueueResumenCierre.
// Sends the reconciliation figures to the supervisor mailbox via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/infra"
)

// ResumenCierrePayload is the job envelope sent to QueueResumenCierre.
type ResumenCierrePayload struct {
	ToEmail       string `json:"to_email"`
	TurnoID       string `json:"turno_id"`
	Cajero        string `json:"cajero"`
	CerradoAt     string `json:"cerrado_at"`
	TotalBs       string `json:"total_bs"`
	TotalUsd      string `json:"total_usd"`
	DiferenciaBs  string `json:"diferencia_bs"`
	DiferenciaUsd string `json:"diferencia_usd"`
}

// ResumenWorker sends shift-close summaries through the circuit-breaker
// protected mailer.
type ResumenWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewResumenWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *ResumenWorker {
	return &ResumenWorker{mailer: mailer, cb: cb}
}

// Process sends the summary email. A returned error sends the job to the DLQ.
func (w *ResumenWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ResumenCierrePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("resumen_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Str("turno_id", payload.TurnoID).Msg("resumen_worker: empty to_email — skipping")
		return nil
	}

	subject := fmt.Sprintf("Cierre de turno %s", payload.TurnoID)
	body := fmt.Sprintf(
		"Turno %s cerrado el %s por %s.\n\nVentas: Bs %s / USD %s\nDiferencia de caja: Bs %s / USD %s\n",
		payload.TurnoID, payload.CerradoAt, payload.Cajero,
		payload.TotalBs, payload.TotalUsd,
		payload.DiferenciaBs, payload.DiferenciaUsd,
	)

	err := w.cb.Execute(func() error {
		return w.mailer.SendResumen(payload.ToEmail, subject, body)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("resumen_worker: failed to send summary")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("turno_id", payload.TurnoID).Msg("resumen_worker: summary sent")
	return nil
}

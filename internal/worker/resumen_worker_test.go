package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Los payloads irrecuperables no deben ir al DLQ: Process devuelve nil antes
// de tocar el mailer, por eso alcanza con un worker sin dependencias.

func TestResumenWorkerPayloadMalformado(t *testing.T) {
	w := NewResumenWorker(nil, nil)

	err := w.Process(context.Background(), json.RawMessage(`{esto no es json`))

	assert.NoError(t, err)
}

func TestResumenWorkerSinDestinatario(t *testing.T) {
	w := NewResumenWorker(nil, nil)
	raw, _ := json.Marshal(ResumenCierrePayload{TurnoID: "t-1"})

	err := w.Process(context.Background(), raw)

	assert.NoError(t, err)
}

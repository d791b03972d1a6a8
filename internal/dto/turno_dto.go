package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirTurnoRequest struct {
	MontoAperturaBs  decimal.Decimal `json:"monto_apertura_bs"  validate:"min=0"`
	MontoAperturaUsd decimal.Decimal `json:"monto_apertura_usd" validate:"min=0"`
	Nota             *string         `json:"nota"`
}

// CerrarTurnoRequest es la declaración del conteo físico. Los desgloses no
// efectivo son opcionales; ausentes cuentan como cero.
type CerrarTurnoRequest struct {
	ContadoBs              decimal.Decimal `json:"contado_bs"  validate:"min=0"`
	ContadoUsd             decimal.Decimal `json:"contado_usd" validate:"min=0"`
	ContadoPagoMovilBs     decimal.Decimal `json:"contado_pago_movil_bs"     validate:"min=0"`
	ContadoTransferenciaBs decimal.Decimal `json:"contado_transferencia_bs"  validate:"min=0"`
	ContadoOtrosBs         decimal.Decimal `json:"contado_otros_bs"          validate:"min=0"`
	Nota                   *string         `json:"nota"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TurnoResponse struct {
	ID               string                  `json:"id"`
	TiendaID         string                  `json:"tienda_id"`
	CajeroID         string                  `json:"cajero_id"`
	Estado           string                  `json:"estado"`
	AbiertoAt        string                  `json:"abierto_at"`
	CerradoAt        *string                 `json:"cerrado_at"`
	MontoAperturaBs  decimal.Decimal         `json:"monto_apertura_bs"`
	MontoAperturaUsd decimal.Decimal         `json:"monto_apertura_usd"`
	MontoCierreBs    *decimal.Decimal        `json:"monto_cierre_bs"`
	MontoCierreUsd   *decimal.Decimal        `json:"monto_cierre_usd"`
	TotalesEsperados *model.TotalesEsperados `json:"totales_esperados"`
	TotalesContados  *model.TotalesContados  `json:"totales_contados"`
	DiferenciaBs     *decimal.Decimal        `json:"diferencia_bs"`
	DiferenciaUsd    *decimal.Decimal        `json:"diferencia_usd"`
	Nota             *string                 `json:"nota"`
	Cortes           []CorteResponse         `json:"cortes,omitempty"`
}

type TurnoListResponse struct {
	Data   []TurnoResponse `json:"data"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

type CorteResponse struct {
	ID          string             `json:"id"`
	TurnoID     string             `json:"turno_id"`
	Tipo        string             `json:"tipo"` // X | Z
	CorteAt     string             `json:"corte_at"`
	Totales     model.TotalesCorte `json:"totales"`
	VentasCount int                `json:"ventas_count"`
	ImpresoAt   *string            `json:"impreso_at"`
	CreadoPor   string             `json:"creado_por"`
	Creador     *string            `json:"creador,omitempty"`
}

// CifrasResumen reproduce las cifras persistidas del turno, sin recalcular.
type CifrasResumen struct {
	MontoAperturaBs  decimal.Decimal         `json:"monto_apertura_bs"`
	MontoAperturaUsd decimal.Decimal         `json:"monto_apertura_usd"`
	TotalesEsperados *model.TotalesEsperados `json:"totales_esperados"`
	TotalesContados  *model.TotalesContados  `json:"totales_contados"`
	DiferenciaBs     *decimal.Decimal        `json:"diferencia_bs"`
	DiferenciaUsd    *decimal.Decimal        `json:"diferencia_usd"`
}

type ResumenTurnoResponse struct {
	Turno       TurnoResponse `json:"turno"`
	Cajero      *string       `json:"cajero"`
	VentasCount int64         `json:"ventas_count"` // tráfico de toda la tienda en la ventana
	CortesCount int           `json:"cortes_count"`
	Resumen     CifrasResumen `json:"resumen"`
}

package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SplitRequest struct {
	EfectivoBs      decimal.Decimal `json:"efectivo_bs"      validate:"min=0"`
	EfectivoUsd     decimal.Decimal `json:"efectivo_usd"     validate:"min=0"`
	PagoMovilBs     decimal.Decimal `json:"pago_movil_bs"    validate:"min=0"`
	TransferenciaBs decimal.Decimal `json:"transferencia_bs" validate:"min=0"`
	OtrosBs         decimal.Decimal `json:"otros_bs"         validate:"min=0"`
}

type PagoRequest struct {
	Metodo      string           `json:"metodo" validate:"required,oneof=CASH_BS CASH_USD PAGO_MOVIL TRANSFER OTHER FIAO SPLIT"`
	RecibidoBs  *decimal.Decimal `json:"recibido_bs"`
	CambioBs    *decimal.Decimal `json:"cambio_bs"`
	RecibidoUsd *decimal.Decimal `json:"recibido_usd"`
	Split       *SplitRequest    `json:"split"`
	Referencia  *string          `json:"referencia"`
}

type RegistrarVentaRequest struct {
	TotalBs     decimal.Decimal `json:"total_bs"  validate:"min=0"`
	TotalUsd    decimal.Decimal `json:"total_usd" validate:"min=0"`
	Pago        PagoRequest     `json:"pago"      validate:"required"`
	Descripcion *string         `json:"descripcion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaResponse struct {
	ID          string          `json:"id"`
	TiendaID    string          `json:"tienda_id"`
	CajeroID    string          `json:"cajero_id"`
	VendidoAt   string          `json:"vendido_at"`
	TotalBs     decimal.Decimal `json:"total_bs"`
	TotalUsd    decimal.Decimal `json:"total_usd"`
	Metodo      string          `json:"metodo"`
	Descripcion *string         `json:"descripcion"`
}

type VentaListResponse struct {
	Data   []VentaResponse `json:"data"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

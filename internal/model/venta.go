package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoPago es el conjunto cerrado de instrumentos de pago que la caja
// reconoce. El despacho por método en el arqueo hace switch sobre estas
// constantes en lugar de comparar strings sueltos.
type MetodoPago string

const (
	MetodoCashBs    MetodoPago = "CASH_BS"
	MetodoCashUsd   MetodoPago = "CASH_USD"
	MetodoPagoMovil MetodoPago = "PAGO_MOVIL"
	MetodoTransfer  MetodoPago = "TRANSFER"
	MetodoOtro      MetodoPago = "OTHER"
	MetodoFiao      MetodoPago = "FIAO"
	MetodoSplit     MetodoPago = "SPLIT"
)

// MetodosConocidos devuelve los métodos en el orden en que se siembran los
// buckets de un corte.
func MetodosConocidos() []MetodoPago {
	return []MetodoPago{
		MetodoCashBs, MetodoCashUsd, MetodoPagoMovil,
		MetodoTransfer, MetodoOtro, MetodoFiao, MetodoSplit,
	}
}

// PagoSplit desglosa un pago mixto por instrumento. Las partes ausentes
// quedan en cero.
type PagoSplit struct {
	EfectivoBs      decimal.Decimal `json:"efectivo_bs"`
	EfectivoUsd     decimal.Decimal `json:"efectivo_usd"`
	PagoMovilBs     decimal.Decimal `json:"pago_movil_bs"`
	TransferenciaBs decimal.Decimal `json:"transferencia_bs"`
	OtrosBs         decimal.Decimal `json:"otros_bs"`
}

// Pago registra el instrumento de una venta. Cada método usa solo sus
// sub-campos: CASH_BS puede traer RecibidoBs/CambioBs (gaveta que recibe lo
// entregado y devuelve vuelto), CASH_USD RecibidoUsd con vuelto en Bs,
// SPLIT el desglose completo. FIAO no mueve caja.
type Pago struct {
	Metodo      MetodoPago       `json:"metodo"`
	RecibidoBs  *decimal.Decimal `json:"recibido_bs,omitempty"`
	CambioBs    *decimal.Decimal `json:"cambio_bs,omitempty"`
	RecibidoUsd *decimal.Decimal `json:"recibido_usd,omitempty"`
	Split       *PagoSplit       `json:"split,omitempty"`
	// Referencia bancaria para pago móvil / transferencia
	Referencia *string `json:"referencia,omitempty"`
}

// Venta es el registro de una venta tal como lo consume la caja: totales y
// pago. El motor de turnos solo la lee y agrega; nunca la modifica.
type Venta struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TiendaID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_ventas_ventana,priority:1"`
	CajeroID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_ventas_ventana,priority:2"`
	VendidoAt   time.Time       `gorm:"not null;index:idx_ventas_ventana,priority:3"`
	TotalBs     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalUsd    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Pago        *Pago           `gorm:"type:jsonb;serializer:json"`
	Descripcion *string
	CreatedAt   time.Time
}

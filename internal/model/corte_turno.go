package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de corte.
const (
	CorteX = "X" // intermedio, turno abierto
	CorteZ = "Z" // final, turno cerrado
)

// TotalesCorte es la agregación de ventas por método de pago al momento del
// corte. PorMetodo se siembra con los siete métodos conocidos en cero; un
// método desconocido suma a TotalBs/TotalUsd pero no crea bucket nuevo.
type TotalesCorte struct {
	VentasCount     int                            `json:"ventas_count"`
	TotalBs         decimal.Decimal                `json:"total_bs"`
	TotalUsd        decimal.Decimal                `json:"total_usd"`
	PorMetodo       map[MetodoPago]decimal.Decimal `json:"por_metodo"`
	EfectivoBs      decimal.Decimal                `json:"efectivo_bs"`
	EfectivoUsd     decimal.Decimal                `json:"efectivo_usd"`
	PagoMovilBs     decimal.Decimal                `json:"pago_movil_bs"`
	TransferenciaBs decimal.Decimal                `json:"transferencia_bs"`
	OtrosBs         decimal.Decimal                `json:"otros_bs"`
}

// CorteTurno es una foto inmutable de las ventas de un turno: corte X en
// cualquier momento con el turno abierto, corte Z una vez cerrado.
// Solo ImpresoAt cambia después de creado (reimpresiones lo pisan).
// Los cortes nunca se borran; una corrección va por registro compensatorio.
type CorteTurno struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	CreadoPor   uuid.UUID    `gorm:"type:uuid;not null"`
	Tipo        string       `gorm:"type:varchar(1);not null"`
	CorteAt     time.Time    `gorm:"not null"`
	Totales     TotalesCorte `gorm:"type:jsonb;serializer:json"`
	VentasCount int          `gorm:"not null"`
	ImpresoAt   *time.Time

	Creador *Usuario `gorm:"foreignKey:CreadoPor"`
}

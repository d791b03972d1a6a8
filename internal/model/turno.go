package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de un turno de caja.
// "cancelado" está reservado para un flujo de supervisión externo;
// ninguna operación de este servicio transiciona hacia él.
const (
	TurnoAbierto   = "abierto"
	TurnoCerrado   = "cerrado"
	TurnoCancelado = "cancelado"
)

// TotalesEsperados es el efectivo y demás instrumentos reconstruidos a partir
// de las ventas del turno. Se calcula una sola vez, al cierre.
// EfectivoBs/EfectivoUsd parten del monto de apertura; TotalBs/TotalUsd son el
// total auditado de ventas, independiente del instrumento.
type TotalesEsperados struct {
	EfectivoBs      decimal.Decimal `json:"efectivo_bs"`
	EfectivoUsd     decimal.Decimal `json:"efectivo_usd"`
	PagoMovilBs     decimal.Decimal `json:"pago_movil_bs"`
	TransferenciaBs decimal.Decimal `json:"transferencia_bs"`
	OtrosBs         decimal.Decimal `json:"otros_bs"`
	TotalBs         decimal.Decimal `json:"total_bs"`
	TotalUsd        decimal.Decimal `json:"total_usd"`
}

// TotalesContados es la declaración física del cajero al cierre.
type TotalesContados struct {
	EfectivoBs      decimal.Decimal `json:"efectivo_bs"`
	EfectivoUsd     decimal.Decimal `json:"efectivo_usd"`
	PagoMovilBs     decimal.Decimal `json:"pago_movil_bs"`
	TransferenciaBs decimal.Decimal `json:"transferencia_bs"`
	OtrosBs         decimal.Decimal `json:"otros_bs"`
}

// Turno representa una sesión de caja de un cajero en una tienda.
// Invariante: a lo sumo un turno con estado "abierto" por (tienda, cajero);
// lo respalda el índice parcial único creado en infra/database.go.
// Los siete campos de cierre (CerradoAt, MontoCierre*, Totales*, Diferencia*)
// son nulos mientras el turno está abierto y se fijan atómicamente en Cerrar.
type Turno struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TiendaID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_turnos_caja,priority:1"`
	CajeroID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_turnos_caja,priority:2"`
	AbiertoAt        time.Time       `gorm:"not null"`
	CerradoAt        *time.Time
	MontoAperturaBs  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontoAperturaUsd decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontoCierreBs    *decimal.Decimal `gorm:"type:decimal(14,2)"`
	MontoCierreUsd   *decimal.Decimal `gorm:"type:decimal(14,2)"`
	TotalesEsperados *TotalesEsperados `gorm:"type:jsonb;serializer:json"`
	TotalesContados  *TotalesContados  `gorm:"type:jsonb;serializer:json"`
	// DiferenciaBs = contado - esperado.EfectivoBs: se concilia la gaveta
	// física, no el ingreso total.
	DiferenciaBs  *decimal.Decimal `gorm:"type:decimal(14,2)"`
	DiferenciaUsd *decimal.Decimal `gorm:"type:decimal(14,2)"`
	Nota          *string
	Estado        string `gorm:"type:varchar(20);not null;default:'abierto'"`

	Cajero *Usuario     `gorm:"foreignKey:CajeroID"`
	Cortes []CorteTurno `gorm:"foreignKey:TurnoID"`
}

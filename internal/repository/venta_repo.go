package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

type VentaRepository interface {
	Crear(ctx context.Context, v *model.Venta) error
	// ListarVentana devuelve las ventas del cajero en [desde, hasta] con
	// pago registrado, en orden de venta. Es la consulta que alimenta el
	// arqueo y los cortes.
	ListarVentana(ctx context.Context, tiendaID, cajeroID uuid.UUID, desde, hasta time.Time) ([]model.Venta, error)
	// ContarDesde cuenta ventas de TODA la tienda desde un instante
	// (tráfico total durante el turno, no solo del cajero).
	ContarDesde(ctx context.Context, tiendaID uuid.UUID, desde time.Time) (int64, error)
	Listar(ctx context.Context, tiendaID uuid.UUID, limit, offset int) ([]model.Venta, int64, error)
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) Crear(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) ListarVentana(ctx context.Context, tiendaID, cajeroID uuid.UUID, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("tienda_id = ? AND cajero_id = ? AND vendido_at >= ? AND vendido_at <= ? AND pago IS NOT NULL",
			tiendaID, cajeroID, desde, hasta).
		Order("vendido_at ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ContarDesde(ctx context.Context, tiendaID uuid.UUID, desde time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("tienda_id = ? AND vendido_at >= ?", tiendaID, desde).
		Count(&n).Error
	return n, err
}

func (r *ventaRepo) Listar(ctx context.Context, tiendaID uuid.UUID, limit, offset int) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{}).Where("tienda_id = ?", tiendaID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("vendido_at DESC").Offset(offset).Limit(limit).Find(&ventas).Error
	return ventas, total, err
}

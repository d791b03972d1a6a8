package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

type CorteRepository interface {
	Crear(ctx context.Context, c *model.CorteTurno) error
	ListarPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.CorteTurno, error)
	BuscarEnTurno(ctx context.Context, corteID, turnoID uuid.UUID) (*model.CorteTurno, error)
	// GuardarImpresion actualiza únicamente impreso_at; el resto del corte
	// es inmutable.
	GuardarImpresion(ctx context.Context, c *model.CorteTurno) error
	ExisteZ(ctx context.Context, turnoID uuid.UUID) (bool, error)
}

type corteRepo struct{ db *gorm.DB }

func NewCorteRepository(db *gorm.DB) CorteRepository { return &corteRepo{db: db} }

func (r *corteRepo) Crear(ctx context.Context, c *model.CorteTurno) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *corteRepo) ListarPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.CorteTurno, error) {
	var cortes []model.CorteTurno
	err := r.db.WithContext(ctx).
		Preload("Creador").
		Where("turno_id = ?", turnoID).
		Order("corte_at ASC").
		Find(&cortes).Error
	return cortes, err
}

func (r *corteRepo) BuscarEnTurno(ctx context.Context, corteID, turnoID uuid.UUID) (*model.CorteTurno, error) {
	var c model.CorteTurno
	err := r.db.WithContext(ctx).
		Where("id = ? AND turno_id = ?", corteID, turnoID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) GuardarImpresion(ctx context.Context, c *model.CorteTurno) error {
	return r.db.WithContext(ctx).Model(c).Update("impreso_at", c.ImpresoAt).Error
}

func (r *corteRepo) ExisteZ(ctx context.Context, turnoID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CorteTurno{}).
		Where("turno_id = ? AND tipo = ?", turnoID, model.CorteZ).
		Count(&n).Error
	return n > 0, err
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

type TurnoRepository interface {
	Crear(ctx context.Context, t *model.Turno) error
	// BuscarAbierto devuelve el turno abierto más reciente del par
	// (tienda, cajero) con sus cortes, o nil si no hay ninguno.
	BuscarAbierto(ctx context.Context, tiendaID, cajeroID uuid.UUID) (*model.Turno, error)
	// BuscarPropio devuelve el turno solo si pertenece al (tienda, cajero).
	BuscarPropio(ctx context.Context, tiendaID, cajeroID, id uuid.UUID) (*model.Turno, error)
	// BuscarEnTienda devuelve el turno de cualquier cajero de la tienda,
	// con cajero y cortes (y sus creadores) cargados.
	BuscarEnTienda(ctx context.Context, tiendaID, id uuid.UUID) (*model.Turno, error)
	// GuardarCierre persiste los siete campos de cierre en un solo UPDATE.
	GuardarCierre(ctx context.Context, t *model.Turno) error
	Listar(ctx context.Context, tiendaID, cajeroID uuid.UUID, limit, offset int) ([]model.Turno, int64, error)
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Crear(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) BuscarAbierto(ctx context.Context, tiendaID, cajeroID uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Preload("Cortes", func(db *gorm.DB) *gorm.DB { return db.Order("corte_at ASC") }).
		Where("tienda_id = ? AND cajero_id = ? AND estado = ?", tiendaID, cajeroID, model.TurnoAbierto).
		Order("abierto_at DESC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) BuscarPropio(ctx context.Context, tiendaID, cajeroID, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Where("id = ? AND tienda_id = ? AND cajero_id = ?", id, tiendaID, cajeroID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) BuscarEnTienda(ctx context.Context, tiendaID, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Preload("Cajero").
		Preload("Cortes", func(db *gorm.DB) *gorm.DB { return db.Order("corte_at ASC") }).
		Preload("Cortes.Creador").
		Where("id = ? AND tienda_id = ?", id, tiendaID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) GuardarCierre(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *turnoRepo) Listar(ctx context.Context, tiendaID, cajeroID uuid.UUID, limit, offset int) ([]model.Turno, int64, error) {
	var turnos []model.Turno
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Turno{}).
		Where("tienda_id = ? AND cajero_id = ?", tiendaID, cajeroID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("abierto_at DESC").Offset(offset).Limit(limit).Find(&turnos).Error
	return turnos, total, err
}

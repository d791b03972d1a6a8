package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/dto"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/repository"
)

type CorteService interface {
	// CrearCorteX toma una foto intermedia de las ventas de un turno abierto.
	// No modifica el turno; se pueden tomar tantos X como se quiera.
	CrearCorteX(ctx context.Context, tiendaID, cajeroID, turnoID uuid.UUID) (*dto.CorteResponse, error)
	// CrearCorteZ toma la foto final de un turno ya cerrado. Uno por turno.
	CrearCorteZ(ctx context.Context, tiendaID, cajeroID, turnoID uuid.UUID) (*dto.CorteResponse, error)
	ListarCortes(ctx context.Context, tiendaID, turnoID uuid.UUID) ([]dto.CorteResponse, error)
	MarcarImpreso(ctx context.Context, tiendaID, turnoID, corteID uuid.UUID) (*dto.CorteResponse, error)
	Resumen(ctx context.Context, tiendaID, turnoID uuid.UUID) (*dto.ResumenTurnoResponse, error)
}

type corteService struct {
	repo      repository.CorteRepository
	turnoRepo repository.TurnoRepository
	ventaRepo repository.VentaRepository
}

func NewCorteService(repo repository.CorteRepository, turnoRepo repository.TurnoRepository, ventaRepo repository.VentaRepository) CorteService {
	return &corteService{repo: repo, turnoRepo: turnoRepo, ventaRepo: ventaRepo}
}

func (s *corteService) CrearCorteX(ctx context.Context, tiendaID, cajeroID, turnoID uuid.UUID) (*dto.CorteResponse, error) {
	turno, err := s.turnoRepo.BuscarPropio(ctx, tiendaID, cajeroID, turnoID)
	if err != nil {
		return nil, err
	}
	if turno == nil || turno.Estado != model.TurnoAbierto {
		return nil, ErrTurnoNoEncontrado
	}

	ahora := time.Now().UTC()
	return s.tomarCorte(ctx, turno, cajeroID, model.CorteX, turno.AbiertoAt, ahora, ahora)
}

func (s *corteService) CrearCorteZ(ctx context.Context, tiendaID, cajeroID, turnoID uuid.UUID) (*dto.CorteResponse, error) {
	turno, err := s.turnoRepo.BuscarPropio(ctx, tiendaID, cajeroID, turnoID)
	if err != nil {
		return nil, err
	}
	if turno == nil {
		return nil, ErrTurnoNoEncontrado
	}
	if turno.Estado != model.TurnoCerrado || turno.CerradoAt == nil {
		return nil, ErrTurnoNoCerrado
	}

	existe, err := s.repo.ExisteZ(ctx, turno.ID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, ErrCorteZExiste
	}

	// La ventana del Z termina en el cierre: el Z refleja exactamente lo que
	// el arqueo concilió, aunque el corte se tome más tarde.
	return s.tomarCorte(ctx, turno, cajeroID, model.CorteZ, turno.AbiertoAt, *turno.CerradoAt, time.Now().UTC())
}

func (s *corteService) tomarCorte(ctx context.Context, turno *model.Turno, creadoPor uuid.UUID, tipo string, desde, hasta, corteAt time.Time) (*dto.CorteResponse, error) {
	ventas, err := s.ventaRepo.ListarVentana(ctx, turno.TiendaID, turno.CajeroID, desde, hasta)
	if err != nil {
		return nil, err
	}
	totales := CalcularTotalesCorte(ventas)

	corte := &model.CorteTurno{
		TurnoID:     turno.ID,
		CreadoPor:   creadoPor,
		Tipo:        tipo,
		CorteAt:     corteAt,
		Totales:     totales,
		VentasCount: totales.VentasCount,
	}
	if err := s.repo.Crear(ctx, corte); err != nil {
		return nil, err
	}
	return corteToResponse(corte), nil
}

func (s *corteService) ListarCortes(ctx context.Context, tiendaID, turnoID uuid.UUID) ([]dto.CorteResponse, error) {
	turno, err := s.turnoRepo.BuscarEnTienda(ctx, tiendaID, turnoID)
	if err != nil {
		return nil, err
	}
	if turno == nil {
		return nil, ErrTurnoNoEncontrado
	}

	cortes, err := s.repo.ListarPorTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CorteResponse, 0, len(cortes))
	for i := range cortes {
		out = append(out, *corteToResponse(&cortes[i]))
	}
	return out, nil
}

func (s *corteService) MarcarImpreso(ctx context.Context, tiendaID, turnoID, corteID uuid.UUID) (*dto.CorteResponse, error) {
	turno, err := s.turnoRepo.BuscarEnTienda(ctx, tiendaID, turnoID)
	if err != nil {
		return nil, err
	}
	if turno == nil {
		return nil, ErrTurnoNoEncontrado
	}

	corte, err := s.repo.BuscarEnTurno(ctx, corteID, turnoID)
	if err != nil {
		return nil, err
	}
	if corte == nil {
		return nil, ErrCorteNoEncontrado
	}

	// Reimpresiones pisan la marca anterior; el historial fino no se guarda.
	ahora := time.Now().UTC()
	corte.ImpresoAt = &ahora
	if err := s.repo.GuardarImpresion(ctx, corte); err != nil {
		return nil, err
	}
	return corteToResponse(corte), nil
}

// Resumen arma la vista de supervisión del turno: cifras persistidas del
// cierre (sin recalcular), cortes tomados y tráfico de toda la tienda desde
// la apertura.
func (s *corteService) Resumen(ctx context.Context, tiendaID, turnoID uuid.UUID) (*dto.ResumenTurnoResponse, error) {
	turno, err := s.turnoRepo.BuscarEnTienda(ctx, tiendaID, turnoID)
	if err != nil {
		return nil, err
	}
	if turno == nil {
		return nil, ErrTurnoNoEncontrado
	}

	ventasCount, err := s.ventaRepo.ContarDesde(ctx, tiendaID, turno.AbiertoAt)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenTurnoResponse{
		Turno:       *turnoToResponse(turno),
		VentasCount: ventasCount,
		CortesCount: len(turno.Cortes),
		Resumen: dto.CifrasResumen{
			MontoAperturaBs:  turno.MontoAperturaBs,
			MontoAperturaUsd: turno.MontoAperturaUsd,
			TotalesEsperados: turno.TotalesEsperados,
			TotalesContados:  turno.TotalesContados,
			DiferenciaBs:     turno.DiferenciaBs,
			DiferenciaUsd:    turno.DiferenciaUsd,
		},
	}
	if turno.Cajero != nil {
		resp.Cajero = &turno.Cajero.Nombre
	}
	return resp, nil
}

func corteToResponse(c *model.CorteTurno) *dto.CorteResponse {
	resp := &dto.CorteResponse{
		ID:          c.ID.String(),
		TurnoID:     c.TurnoID.String(),
		Tipo:        c.Tipo,
		CorteAt:     c.CorteAt.Format(time.RFC3339),
		Totales:     c.Totales,
		VentasCount: c.VentasCount,
		CreadoPor:   c.CreadoPor.String(),
	}
	if c.ImpresoAt != nil {
		s := c.ImpresoAt.Format(time.RFC3339)
		resp.ImpresoAt = &s
	}
	if c.Creador != nil {
		resp.Creador = &c.Creador.Nombre
	}
	return resp
}

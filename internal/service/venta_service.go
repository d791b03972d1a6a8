package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/dto"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/repository"
)

type VentaService interface {
	// Registrar persiste una venta contra el turno abierto del cajero.
	// Sin turno abierto no hay venta: toda venta debe ser conciliable.
	Registrar(ctx context.Context, tiendaID, cajeroID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, tiendaID uuid.UUID, limit, offset int) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo      repository.VentaRepository
	turnoRepo repository.TurnoRepository
}

func NewVentaService(repo repository.VentaRepository, turnoRepo repository.TurnoRepository) VentaService {
	return &ventaService{repo: repo, turnoRepo: turnoRepo}
}

func (s *ventaService) Registrar(ctx context.Context, tiendaID, cajeroID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	turno, err := s.turnoRepo.BuscarAbierto(ctx, tiendaID, cajeroID)
	if err != nil {
		return nil, err
	}
	if turno == nil {
		return nil, ErrVentaSinTurno
	}

	pago, err := validarPago(req)
	if err != nil {
		return nil, err
	}

	venta := &model.Venta{
		TiendaID:    tiendaID,
		CajeroID:    cajeroID,
		VendidoAt:   time.Now().UTC(),
		TotalBs:     round2(req.TotalBs),
		TotalUsd:    round2(req.TotalUsd),
		Pago:        pago,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Crear(ctx, venta); err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, tiendaID uuid.UUID, limit, offset int) (*dto.VentaListResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	ventas, total, err := s.repo.Listar(ctx, tiendaID, limit, offset)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Limit: limit, Offset: offset}, nil
}

// validarPago chequea la coherencia interna del pago según su método antes de
// persistirlo. Lo que entra mal aquí saldría mal del arqueo semanas después.
func validarPago(req dto.RegistrarVentaRequest) (*model.Pago, error) {
	metodo := model.MetodoPago(req.Pago.Metodo)

	pago := &model.Pago{
		Metodo:      metodo,
		RecibidoBs:  req.Pago.RecibidoBs,
		CambioBs:    req.Pago.CambioBs,
		RecibidoUsd: req.Pago.RecibidoUsd,
		Referencia:  req.Pago.Referencia,
	}

	for campo, monto := range map[string]*decimal.Decimal{
		"pago.recibido_bs":  pago.RecibidoBs,
		"pago.cambio_bs":    pago.CambioBs,
		"pago.recibido_usd": pago.RecibidoUsd,
	} {
		if monto != nil && monto.IsNegative() {
			return nil, errValidacion(campo, "no puede ser negativo: %s", *monto)
		}
	}

	switch metodo {
	case model.MetodoCashBs:
		if pago.RecibidoBs != nil && pago.CambioBs != nil &&
			pago.CambioBs.GreaterThan(*pago.RecibidoBs) {
			return nil, errValidacion("pago.cambio_bs", "el vuelto %s excede lo recibido %s", pago.CambioBs, pago.RecibidoBs)
		}
	case model.MetodoSplit:
		if req.Pago.Split == nil {
			return nil, errValidacion("pago.split", "un pago SPLIT requiere el desglose")
		}
		partes := []struct {
			nombre string
			monto  decimal.Decimal
		}{
			{"pago.split.efectivo_bs", req.Pago.Split.EfectivoBs},
			{"pago.split.efectivo_usd", req.Pago.Split.EfectivoUsd},
			{"pago.split.pago_movil_bs", req.Pago.Split.PagoMovilBs},
			{"pago.split.transferencia_bs", req.Pago.Split.TransferenciaBs},
			{"pago.split.otros_bs", req.Pago.Split.OtrosBs},
		}
		for _, p := range partes {
			if p.monto.IsNegative() {
				return nil, errValidacion(p.nombre, "no puede ser negativo: %s", p.monto)
			}
		}
		pago.Split = &model.PagoSplit{
			EfectivoBs:      round2(req.Pago.Split.EfectivoBs),
			EfectivoUsd:     round2(req.Pago.Split.EfectivoUsd),
			PagoMovilBs:     round2(req.Pago.Split.PagoMovilBs),
			TransferenciaBs: round2(req.Pago.Split.TransferenciaBs),
			OtrosBs:         round2(req.Pago.Split.OtrosBs),
		}
	}

	return pago, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:          v.ID.String(),
		TiendaID:    v.TiendaID.String(),
		CajeroID:    v.CajeroID.String(),
		VendidoAt:   v.VendidoAt.Format(time.RFC3339),
		TotalBs:     v.TotalBs,
		TotalUsd:    v.TotalUsd,
		Descripcion: v.Descripcion,
	}
	if v.Pago != nil {
		resp.Metodo = string(v.Pago.Metodo)
	}
	return resp
}

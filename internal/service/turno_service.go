package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/dto"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/infra"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/repository"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/worker"
)

type TurnoService interface {
	Abrir(ctx context.Context, tiendaID, cajeroID uuid.UUID, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error)
	// Actual devuelve el turno abierto del cajero con sus cortes, o nil.
	Actual(ctx context.Context, tiendaID, cajeroID uuid.UUID) (*dto.TurnoResponse, error)
	Cerrar(ctx context.Context, tiendaID, cajeroID, turnoID uuid.UUID, req dto.CerrarTurnoRequest) (*dto.TurnoResponse, error)
	Listar(ctx context.Context, tiendaID, cajeroID uuid.UUID, limit, offset int) (*dto.TurnoListResponse, error)
}

type turnoService struct {
	repo       repository.TurnoRepository
	ventaRepo  repository.VentaRepository
	cerrojo    *infra.Cerrojo     // nil en tests: el índice parcial respalda solo
	dispatcher *worker.Dispatcher // nil en tests: sin notificación de cierre
	supervisorEmail string
}

func NewTurnoService(
	repo repository.TurnoRepository,
	ventaRepo repository.VentaRepository,
	cerrojo *infra.Cerrojo,
	dispatcher *worker.Dispatcher,
	supervisorEmail string,
) TurnoService {
	return &turnoService{
		repo:            repo,
		ventaRepo:       ventaRepo,
		cerrojo:         cerrojo,
		dispatcher:      dispatcher,
		supervisorEmail: supervisorEmail,
	}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *turnoService) Abrir(ctx context.Context, tiendaID, cajeroID uuid.UUID, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error) {
	if req.MontoAperturaBs.IsNegative() {
		return nil, errValidacion("monto_apertura_bs", "no puede ser negativo: %s", req.MontoAperturaBs)
	}
	if req.MontoAperturaUsd.IsNegative() {
		return nil, errValidacion("monto_apertura_usd", "no puede ser negativo: %s", req.MontoAperturaUsd)
	}

	liberar, err := s.trancarCaja(ctx, tiendaID, cajeroID)
	if err != nil {
		return nil, err
	}
	defer liberar()

	// Guard: un solo turno abierto por (tienda, cajero). El índice parcial
	// uni_turnos_abierto cubre la carrera que este chequeo no puede.
	if existente, err := s.repo.BuscarAbierto(ctx, tiendaID, cajeroID); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, ErrTurnoAbiertoExiste
	}

	turno := &model.Turno{
		TiendaID:         tiendaID,
		CajeroID:         cajeroID,
		AbiertoAt:        time.Now().UTC(),
		MontoAperturaBs:  round2(req.MontoAperturaBs),
		MontoAperturaUsd: round2(req.MontoAperturaUsd),
		Nota:             req.Nota,
		Estado:           model.TurnoAbierto,
	}
	if err := s.repo.Crear(ctx, turno); err != nil {
		return nil, err
	}

	return turnoToResponse(turno), nil
}

// ── Actual ────────────────────────────────────────────────────────────────────

func (s *turnoService) Actual(ctx context.Context, tiendaID, cajeroID uuid.UUID) (*dto.TurnoResponse, error) {
	turno, err := s.repo.BuscarAbierto(ctx, tiendaID, cajeroID)
	if err != nil {
		return nil, err
	}
	if turno == nil {
		return nil, nil
	}
	return turnoToResponse(turno), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Corre el arqueo completo una sola vez y fija los siete campos de cierre en
// un único UPDATE. Si cualquier validación falla, el turno queda abierto y
// nada se persiste.

func (s *turnoService) Cerrar(ctx context.Context, tiendaID, cajeroID, turnoID uuid.UUID, req dto.CerrarTurnoRequest) (*dto.TurnoResponse, error) {
	contados, err := validarContados(req)
	if err != nil {
		return nil, err
	}

	liberar, err := s.trancarCaja(ctx, tiendaID, cajeroID)
	if err != nil {
		return nil, err
	}
	defer liberar()

	turno, err := s.repo.BuscarPropio(ctx, tiendaID, cajeroID, turnoID)
	if err != nil {
		return nil, err
	}
	if turno == nil || turno.Estado != model.TurnoAbierto {
		return nil, ErrTurnoNoEncontrado
	}

	ahora := time.Now().UTC()
	hasta := ahora
	if turno.CerradoAt != nil {
		// No debería pasar con estado abierto; se respeta por las dudas.
		hasta = *turno.CerradoAt
	}

	ventas, err := s.ventaRepo.ListarVentana(ctx, tiendaID, cajeroID, turno.AbiertoAt, hasta)
	if err != nil {
		return nil, err
	}
	esperados := CalcularTotalesEsperados(turno, ventas)

	// Tope de sanidad: atrapa errores de tipeo groseros (un cero de más),
	// no sobrantes legítimos.
	techoBs := round2(esperados.EfectivoBs.Add(turno.MontoAperturaBs).Mul(decimal.NewFromInt(2)))
	if contados.EfectivoBs.GreaterThan(techoBs) {
		return nil, errValidacion("contado_bs", "%s excede el máximo razonable de %s", contados.EfectivoBs, techoBs)
	}
	techoUsd := round2(esperados.EfectivoUsd.Add(turno.MontoAperturaUsd).Mul(decimal.NewFromInt(2)))
	if contados.EfectivoUsd.GreaterThan(techoUsd) {
		return nil, errValidacion("contado_usd", "%s excede el máximo razonable de %s", contados.EfectivoUsd, techoUsd)
	}

	diferenciaBs := round2(contados.EfectivoBs.Sub(esperados.EfectivoBs))
	diferenciaUsd := round2(contados.EfectivoUsd.Sub(esperados.EfectivoUsd))

	turno.CerradoAt = &ahora
	turno.MontoCierreBs = &contados.EfectivoBs
	turno.MontoCierreUsd = &contados.EfectivoUsd
	turno.TotalesEsperados = &esperados
	turno.TotalesContados = contados
	turno.DiferenciaBs = &diferenciaBs
	turno.DiferenciaUsd = &diferenciaUsd
	turno.Estado = model.TurnoCerrado
	if req.Nota != nil {
		turno.Nota = req.Nota
	}

	if err := s.repo.GuardarCierre(ctx, turno); err != nil {
		return nil, err
	}

	s.notificarCierre(ctx, turno)

	return turnoToResponse(turno), nil
}

// ── Listar ────────────────────────────────────────────────────────────────────

func (s *turnoService) Listar(ctx context.Context, tiendaID, cajeroID uuid.UUID, limit, offset int) (*dto.TurnoListResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	turnos, total, err := s.repo.Listar(ctx, tiendaID, cajeroID, limit, offset)
	if err != nil {
		return nil, err
	}
	data := make([]dto.TurnoResponse, 0, len(turnos))
	for i := range turnos {
		data = append(data, *turnoToResponse(&turnos[i]))
	}
	return &dto.TurnoListResponse{Data: data, Total: total, Limit: limit, Offset: offset}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// trancarCaja serializa abrir/cerrar por caja. Con redis caído se sigue sin
// cerrojo: el índice parcial único es quien garantiza el invariante.
func (s *turnoService) trancarCaja(ctx context.Context, tiendaID, cajeroID uuid.UUID) (func(), error) {
	if s.cerrojo == nil {
		return func() {}, nil
	}
	clave := tiendaID.String() + ":" + cajeroID.String()
	ok, err := s.cerrojo.Adquirir(ctx, clave)
	if err != nil {
		log.Warn().Err(err).Msg("cerrojo de caja no disponible — se continúa con el índice único")
		return func() {}, nil
	}
	if !ok {
		return nil, ErrCajaOcupada
	}
	return func() { s.cerrojo.Liberar(ctx, clave) }, nil
}

func validarContados(req dto.CerrarTurnoRequest) (*model.TotalesContados, error) {
	campos := []struct {
		nombre string
		monto  decimal.Decimal
	}{
		{"contado_bs", req.ContadoBs},
		{"contado_usd", req.ContadoUsd},
		{"contado_pago_movil_bs", req.ContadoPagoMovilBs},
		{"contado_transferencia_bs", req.ContadoTransferenciaBs},
		{"contado_otros_bs", req.ContadoOtrosBs},
	}
	for _, c := range campos {
		if c.monto.IsNegative() {
			return nil, errValidacion(c.nombre, "no puede ser negativo: %s", c.monto)
		}
	}
	return &model.TotalesContados{
		EfectivoBs:      round2(req.ContadoBs),
		EfectivoUsd:     round2(req.ContadoUsd),
		PagoMovilBs:     round2(req.ContadoPagoMovilBs),
		TransferenciaBs: round2(req.ContadoTransferenciaBs),
		OtrosBs:         round2(req.ContadoOtrosBs),
	}, nil
}

// notificarCierre encola el resumen para el supervisor. Best effort: un fallo
// aquí no deshace el cierre.
func (s *turnoService) notificarCierre(ctx context.Context, turno *model.Turno) {
	if s.dispatcher == nil || s.supervisorEmail == "" {
		return
	}
	cajero := turno.CajeroID.String()
	if turno.Cajero != nil {
		cajero = turno.Cajero.Nombre
	}
	payload := worker.ResumenCierrePayload{
		ToEmail:       s.supervisorEmail,
		TurnoID:       turno.ID.String(),
		Cajero:        cajero,
		CerradoAt:     turno.CerradoAt.Format(time.RFC3339),
		TotalBs:       turno.TotalesEsperados.TotalBs.StringFixed(2),
		TotalUsd:      turno.TotalesEsperados.TotalUsd.StringFixed(2),
		DiferenciaBs:  turno.DiferenciaBs.StringFixed(2),
		DiferenciaUsd: turno.DiferenciaUsd.StringFixed(2),
	}
	if err := s.dispatcher.EnqueueResumenCierre(ctx, payload); err != nil {
		log.Warn().Err(err).Str("turno_id", turno.ID.String()).Msg("no se pudo encolar el resumen de cierre")
	}
}

func turnoToResponse(t *model.Turno) *dto.TurnoResponse {
	resp := &dto.TurnoResponse{
		ID:               t.ID.String(),
		TiendaID:         t.TiendaID.String(),
		CajeroID:         t.CajeroID.String(),
		Estado:           t.Estado,
		AbiertoAt:        t.AbiertoAt.Format(time.RFC3339),
		MontoAperturaBs:  t.MontoAperturaBs,
		MontoAperturaUsd: t.MontoAperturaUsd,
		MontoCierreBs:    t.MontoCierreBs,
		MontoCierreUsd:   t.MontoCierreUsd,
		TotalesEsperados: t.TotalesEsperados,
		TotalesContados:  t.TotalesContados,
		DiferenciaBs:     t.DiferenciaBs,
		DiferenciaUsd:    t.DiferenciaUsd,
		Nota:             t.Nota,
	}
	if t.CerradoAt != nil {
		s := t.CerradoAt.Format(time.RFC3339)
		resp.CerradoAt = &s
	}
	for i := range t.Cortes {
		resp.Cortes = append(resp.Cortes, *corteToResponse(&t.Cortes[i]))
	}
	return resp
}

package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/dto"
	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

// ── In-memory CorteRepository ────────────────────────────────────────────────

type fakeCorteRepo struct {
	cortes map[uuid.UUID]*model.CorteTurno
}

func newFakeCorteRepo() *fakeCorteRepo {
	return &fakeCorteRepo{cortes: make(map[uuid.UUID]*model.CorteTurno)}
}

func (r *fakeCorteRepo) Crear(_ context.Context, c *model.CorteTurno) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copia := *c
	r.cortes[c.ID] = &copia
	return nil
}

func (r *fakeCorteRepo) ListarPorTurno(_ context.Context, turnoID uuid.UUID) ([]model.CorteTurno, error) {
	var out []model.CorteTurno
	for _, c := range r.cortes {
		if c.TurnoID == turnoID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CorteAt.Before(out[j].CorteAt) })
	return out, nil
}

func (r *fakeCorteRepo) BuscarEnTurno(_ context.Context, corteID, turnoID uuid.UUID) (*model.CorteTurno, error) {
	c, ok := r.cortes[corteID]
	if !ok || c.TurnoID != turnoID {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *fakeCorteRepo) GuardarImpresion(_ context.Context, c *model.CorteTurno) error {
	guardado, ok := r.cortes[c.ID]
	if !ok {
		return nil
	}
	guardado.ImpresoAt = c.ImpresoAt
	return nil
}

func (r *fakeCorteRepo) ExisteZ(_ context.Context, turnoID uuid.UUID) (bool, error) {
	for _, c := range r.cortes {
		if c.TurnoID == turnoID && c.Tipo == model.CorteZ {
			return true, nil
		}
	}
	return false, nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

type cajaFixture struct {
	turnoRepo *fakeTurnoRepo
	corteRepo *fakeCorteRepo
	ventaRepo *fakeVentaRepo
	turnos    TurnoService
	cortes    CorteService
}

func nuevaCaja() *cajaFixture {
	turnoRepo := newFakeTurnoRepo()
	corteRepo := newFakeCorteRepo()
	ventaRepo := &fakeVentaRepo{}
	return &cajaFixture{
		turnoRepo: turnoRepo,
		corteRepo: corteRepo,
		ventaRepo: ventaRepo,
		turnos:    NewTurnoService(turnoRepo, ventaRepo, nil, nil, ""),
		cortes:    NewCorteService(corteRepo, turnoRepo, ventaRepo),
	}
}

func (f *cajaFixture) abrir(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := f.turnos.Abrir(context.Background(), tiendaA, cajero1, dto.AbrirTurnoRequest{})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func (f *cajaFixture) cerrarConContado(t *testing.T, turnoID uuid.UUID, contadoBs string) {
	t.Helper()
	_, err := f.turnos.Cerrar(context.Background(), tiendaA, cajero1, turnoID, dto.CerrarTurnoRequest{
		ContadoBs: dec(contadoBs),
	})
	require.NoError(t, err)
}

// ── Corte X ──────────────────────────────────────────────────────────────────

func TestCorteXSobreTurnoAbierto(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	venderEfectivo(f.ventaRepo, cajero1, "50.00", nil)
	venderEfectivo(f.ventaRepo, cajero1, "30.00", &model.Pago{Metodo: model.MetodoPagoMovil})

	corte, err := f.cortes.CrearCorteX(context.Background(), tiendaA, cajero1, turnoID)

	require.NoError(t, err)
	assert.Equal(t, model.CorteX, corte.Tipo)
	assert.Equal(t, 2, corte.VentasCount)
	assert.True(t, corte.Totales.TotalBs.Equal(dec("80.00")))
	assert.True(t, corte.Totales.EfectivoBs.Equal(dec("50.00")))
	assert.Nil(t, corte.ImpresoAt)
}

func TestCorteXVariasVeces(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)

	for i := 0; i < 3; i++ {
		_, err := f.cortes.CrearCorteX(context.Background(), tiendaA, cajero1, turnoID)
		require.NoError(t, err)
	}

	lista, err := f.cortes.ListarCortes(context.Background(), tiendaA, turnoID)
	require.NoError(t, err)
	assert.Len(t, lista, 3)
}

func TestCorteXSobreTurnoCerrado(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	f.cerrarConContado(t, turnoID, "0")

	_, err := f.cortes.CrearCorteX(context.Background(), tiendaA, cajero1, turnoID)

	assert.ErrorIs(t, err, ErrTurnoNoEncontrado)
}

// ── Corte Z ──────────────────────────────────────────────────────────────────

func TestCorteZRequiereTurnoCerrado(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)

	_, err := f.cortes.CrearCorteZ(context.Background(), tiendaA, cajero1, turnoID)

	assert.ErrorIs(t, err, ErrTurnoNoCerrado)
}

func TestCorteZSobreTurnoCerrado(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	venderEfectivo(f.ventaRepo, cajero1, "75.00", nil)
	f.cerrarConContado(t, turnoID, "75.00")

	corte, err := f.cortes.CrearCorteZ(context.Background(), tiendaA, cajero1, turnoID)

	require.NoError(t, err)
	assert.Equal(t, model.CorteZ, corte.Tipo)
	assert.Equal(t, 1, corte.VentasCount)
	assert.True(t, corte.Totales.TotalBs.Equal(dec("75.00")))
}

func TestCorteZIgnoraVentasPosterioresAlCierre(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	venderEfectivo(f.ventaRepo, cajero1, "75.00", nil)
	f.cerrarConContado(t, turnoID, "75.00")

	// Venta colada después del cierre: la ventana del Z termina en cerrado_at.
	f.ventaRepo.ventas = append(f.ventaRepo.ventas, model.Venta{
		ID:        uuid.New(),
		TiendaID:  tiendaA,
		CajeroID:  cajero1,
		VendidoAt: time.Now().UTC().Add(time.Hour),
		TotalBs:   dec("999.00"),
		Pago:      &model.Pago{Metodo: model.MetodoCashBs},
	})

	corte, err := f.cortes.CrearCorteZ(context.Background(), tiendaA, cajero1, turnoID)

	require.NoError(t, err)
	assert.Equal(t, 1, corte.VentasCount)
	assert.True(t, corte.Totales.TotalBs.Equal(dec("75.00")))
}

func TestCorteZUnicoPorTurno(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	f.cerrarConContado(t, turnoID, "0")
	_, err := f.cortes.CrearCorteZ(context.Background(), tiendaA, cajero1, turnoID)
	require.NoError(t, err)

	_, err = f.cortes.CrearCorteZ(context.Background(), tiendaA, cajero1, turnoID)

	assert.ErrorIs(t, err, ErrCorteZExiste)
}

func TestCorteZTurnoInexistente(t *testing.T) {
	f := nuevaCaja()

	_, err := f.cortes.CrearCorteZ(context.Background(), tiendaA, cajero1, uuid.New())

	assert.ErrorIs(t, err, ErrTurnoNoEncontrado)
}

// ── Listar / imprimir ────────────────────────────────────────────────────────

func TestListarCortesOrdenCronologico(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)

	// Dos cortes con corte_at controlado, insertados fuera de orden.
	tarde := time.Now().UTC()
	temprano := tarde.Add(-time.Hour)
	require.NoError(t, f.corteRepo.Crear(context.Background(), &model.CorteTurno{
		TurnoID: turnoID, CreadoPor: cajero1, Tipo: model.CorteX, CorteAt: tarde,
	}))
	require.NoError(t, f.corteRepo.Crear(context.Background(), &model.CorteTurno{
		TurnoID: turnoID, CreadoPor: cajero1, Tipo: model.CorteX, CorteAt: temprano,
	}))

	lista, err := f.cortes.ListarCortes(context.Background(), tiendaA, turnoID)

	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.True(t, lista[0].CorteAt <= lista[1].CorteAt)
}

func TestListarCortesTurnoInexistente(t *testing.T) {
	f := nuevaCaja()

	_, err := f.cortes.ListarCortes(context.Background(), tiendaA, uuid.New())

	assert.ErrorIs(t, err, ErrTurnoNoEncontrado)
}

func TestMarcarImpresoYReimprimir(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	corte, err := f.cortes.CrearCorteX(context.Background(), tiendaA, cajero1, turnoID)
	require.NoError(t, err)
	corteID := uuid.MustParse(corte.ID)

	primera, err := f.cortes.MarcarImpreso(context.Background(), tiendaA, turnoID, corteID)
	require.NoError(t, err)
	require.NotNil(t, primera.ImpresoAt)

	segunda, err := f.cortes.MarcarImpreso(context.Background(), tiendaA, turnoID, corteID)
	require.NoError(t, err)
	require.NotNil(t, segunda.ImpresoAt)
	// La reimpresión pisa la marca; nunca la borra.
	assert.True(t, *segunda.ImpresoAt >= *primera.ImpresoAt)
}

func TestMarcarImpresoNoTocaTotales(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	venderEfectivo(f.ventaRepo, cajero1, "60.00", nil)
	corte, err := f.cortes.CrearCorteX(context.Background(), tiendaA, cajero1, turnoID)
	require.NoError(t, err)

	impreso, err := f.cortes.MarcarImpreso(context.Background(), tiendaA, turnoID, uuid.MustParse(corte.ID))

	require.NoError(t, err)
	assert.True(t, impreso.Totales.TotalBs.Equal(corte.Totales.TotalBs))
	assert.Equal(t, corte.VentasCount, impreso.VentasCount)
}

func TestMarcarImpresoCorteInexistente(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)

	_, err := f.cortes.MarcarImpreso(context.Background(), tiendaA, turnoID, uuid.New())

	assert.ErrorIs(t, err, ErrCorteNoEncontrado)
}

func TestMarcarImpresoCorteDeOtroTurno(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	corte, err := f.cortes.CrearCorteX(context.Background(), tiendaA, cajero1, turnoID)
	require.NoError(t, err)
	f.cerrarConContado(t, turnoID, "0")

	otroTurno, err := f.turnos.Abrir(context.Background(), tiendaA, cajero1, dto.AbrirTurnoRequest{})
	require.NoError(t, err)

	_, err = f.cortes.MarcarImpreso(context.Background(), tiendaA, uuid.MustParse(otroTurno.ID), uuid.MustParse(corte.ID))

	assert.ErrorIs(t, err, ErrCorteNoEncontrado)
}

// ── Resumen ──────────────────────────────────────────────────────────────────

func TestResumenDeTurnoCerrado(t *testing.T) {
	f := nuevaCaja()
	turnoID := f.abrir(t)
	venderEfectivo(f.ventaRepo, cajero1, "40.00", nil)
	// Venta de otro cajero de la tienda: cuenta en el tráfico del resumen.
	venderEfectivo(f.ventaRepo, cajero2, "15.00", nil)
	f.cerrarConContado(t, turnoID, "40.00")

	resumen, err := f.cortes.Resumen(context.Background(), tiendaA, turnoID)

	require.NoError(t, err)
	assert.Equal(t, model.TurnoCerrado, resumen.Turno.Estado)
	assert.Equal(t, int64(2), resumen.VentasCount)
	require.NotNil(t, resumen.Resumen.TotalesEsperados)
	assert.True(t, resumen.Resumen.TotalesEsperados.EfectivoBs.Equal(dec("40.00")))
	require.NotNil(t, resumen.Resumen.DiferenciaBs)
	assert.True(t, resumen.Resumen.DiferenciaBs.IsZero())
}

// ── Jornada completa ─────────────────────────────────────────────────────────

func TestJornadaCompleta(t *testing.T) {
	// Abre sin fondo, vende 50 en efectivo y 30 por pago móvil, toma un X,
	// cierra declarando 50 en gaveta y toma el Z final.
	f := nuevaCaja()
	turnoID := f.abrir(t)
	venderEfectivo(f.ventaRepo, cajero1, "50.00", nil)
	venderEfectivo(f.ventaRepo, cajero1, "30.00", &model.Pago{Metodo: model.MetodoPagoMovil})

	x, err := f.cortes.CrearCorteX(context.Background(), tiendaA, cajero1, turnoID)
	require.NoError(t, err)
	assert.Equal(t, 2, x.VentasCount)
	assert.True(t, x.Totales.TotalBs.Equal(dec("80.00")))

	cerrado, err := f.turnos.Cerrar(context.Background(), tiendaA, cajero1, turnoID, dto.CerrarTurnoRequest{
		ContadoBs:          dec("50.00"),
		ContadoPagoMovilBs: dec("30.00"),
	})
	require.NoError(t, err)
	assert.True(t, cerrado.TotalesEsperados.EfectivoBs.Equal(dec("50.00")))
	assert.True(t, cerrado.TotalesEsperados.PagoMovilBs.Equal(dec("30.00")))
	assert.True(t, cerrado.DiferenciaBs.IsZero())

	z, err := f.cortes.CrearCorteZ(context.Background(), tiendaA, cajero1, turnoID)
	require.NoError(t, err)
	assert.Equal(t, 2, z.VentasCount)
	assert.True(t, z.Totales.TotalBs.Equal(dec("80.00")))
	assert.True(t, z.Totales.EfectivoBs.Equal(dec("50.00")))
	assert.True(t, z.Totales.PagoMovilBs.Equal(dec("30.00")))
}

func TestResumenTurnoInexistente(t *testing.T) {
	f := nuevaCaja()

	_, err := f.cortes.Resumen(context.Background(), tiendaA, uuid.New())

	assert.ErrorIs(t, err, ErrTurnoNoEncontrado)
}

package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func turnoConApertura(bs, usd string) *model.Turno {
	return &model.Turno{
		AbiertoAt:        time.Now().UTC().Add(-2 * time.Hour),
		MontoAperturaBs:  dec(bs),
		MontoAperturaUsd: dec(usd),
		Estado:           model.TurnoAbierto,
	}
}

func ventaCash(totalBs string) model.Venta {
	return model.Venta{
		TotalBs: dec(totalBs),
		Pago:    &model.Pago{Metodo: model.MetodoCashBs},
	}
}

func ventaMetodo(metodo model.MetodoPago, totalBs, totalUsd string) model.Venta {
	return model.Venta{
		TotalBs: dec(totalBs),
		TotalUsd: func() decimal.Decimal {
			if totalUsd == "" {
				return decimal.Zero
			}
			return dec(totalUsd)
		}(),
		Pago: &model.Pago{Metodo: metodo},
	}
}

// ── CalcularTotalesEsperados ─────────────────────────────────────────────────

func TestEsperadosSinVentas(t *testing.T) {
	turno := turnoConApertura("100.00", "20.00")

	tot := CalcularTotalesEsperados(turno, nil)

	assert.True(t, tot.EfectivoBs.Equal(dec("100.00")), "efectivo_bs = %s", tot.EfectivoBs)
	assert.True(t, tot.EfectivoUsd.Equal(dec("20.00")))
	assert.True(t, tot.TotalBs.IsZero())
	assert.True(t, tot.TotalUsd.IsZero())
}

func TestEsperadosEfectivoExacto(t *testing.T) {
	turno := turnoConApertura("100.00", "0")

	tot := CalcularTotalesEsperados(turno, []model.Venta{
		ventaCash("50.00"),
		ventaCash("25.50"),
	})

	assert.True(t, tot.EfectivoBs.Equal(dec("175.50")), "efectivo_bs = %s", tot.EfectivoBs)
	assert.True(t, tot.TotalBs.Equal(dec("75.50")))
}

func TestEsperadosEfectivoConVuelto(t *testing.T) {
	// Recibe 150, devuelve 50: la gaveta crece 100 aunque el total sea 100.
	turno := turnoConApertura("0", "0")
	venta := model.Venta{
		TotalBs: dec("100.00"),
		Pago: &model.Pago{
			Metodo:     model.MetodoCashBs,
			RecibidoBs: decPtr("150.00"),
			CambioBs:   decPtr("50.00"),
		},
	}

	tot := CalcularTotalesEsperados(turno, []model.Venta{venta})

	assert.True(t, tot.EfectivoBs.Equal(dec("100.00")), "efectivo_bs = %s", tot.EfectivoBs)
	assert.True(t, tot.TotalBs.Equal(dec("100.00")))
}

func TestEsperadosDolaresConVueltoEnBs(t *testing.T) {
	// Pago en dólares: lo recibido engorda la gaveta USD y el vuelto sale en Bs.
	turno := turnoConApertura("500.00", "0")
	venta := model.Venta{
		TotalBs:  dec("360.00"),
		TotalUsd: dec("10.00"),
		Pago: &model.Pago{
			Metodo:      model.MetodoCashUsd,
			RecibidoUsd: decPtr("10.00"),
			CambioBs:    decPtr("36.00"),
		},
	}

	tot := CalcularTotalesEsperados(turno, []model.Venta{venta})

	assert.True(t, tot.EfectivoUsd.Equal(dec("10.00")))
	assert.True(t, tot.EfectivoBs.Equal(dec("464.00")), "efectivo_bs = %s", tot.EfectivoBs)
}

func TestEsperadosDolaresSinRecibido(t *testing.T) {
	turno := turnoConApertura("0", "5.00")

	tot := CalcularTotalesEsperados(turno, []model.Venta{
		ventaMetodo(model.MetodoCashUsd, "0", "12.50"),
	})

	assert.True(t, tot.EfectivoUsd.Equal(dec("17.50")))
	assert.True(t, tot.EfectivoBs.IsZero())
}

func TestEsperadosBucketsNoEfectivo(t *testing.T) {
	turno := turnoConApertura("0", "0")

	tot := CalcularTotalesEsperados(turno, []model.Venta{
		ventaMetodo(model.MetodoPagoMovil, "80.00", ""),
		ventaMetodo(model.MetodoTransfer, "120.00", ""),
		ventaMetodo(model.MetodoOtro, "15.25", ""),
	})

	assert.True(t, tot.PagoMovilBs.Equal(dec("80.00")))
	assert.True(t, tot.TransferenciaBs.Equal(dec("120.00")))
	assert.True(t, tot.OtrosBs.Equal(dec("15.25")))
	assert.True(t, tot.EfectivoBs.IsZero())
	assert.True(t, tot.TotalBs.Equal(dec("215.25")))
}

func TestEsperadosSplitReparteEnBuckets(t *testing.T) {
	turno := turnoConApertura("0", "0")
	venta := model.Venta{
		TotalBs:  dec("200.00"),
		TotalUsd: dec("2.00"),
		Pago: &model.Pago{
			Metodo: model.MetodoSplit,
			Split: &model.PagoSplit{
				EfectivoBs:      dec("50.00"),
				EfectivoUsd:     dec("2.00"),
				PagoMovilBs:     dec("70.00"),
				TransferenciaBs: dec("0"),
				OtrosBs:         dec("8.00"),
			},
		},
	}

	tot := CalcularTotalesEsperados(turno, []model.Venta{venta})

	assert.True(t, tot.EfectivoBs.Equal(dec("50.00")))
	assert.True(t, tot.EfectivoUsd.Equal(dec("2.00")))
	assert.True(t, tot.PagoMovilBs.Equal(dec("70.00")))
	assert.True(t, tot.OtrosBs.Equal(dec("8.00")))
	assert.True(t, tot.TransferenciaBs.IsZero())
}

func TestEsperadosFiaoNoMueveCaja(t *testing.T) {
	// El fiao cuenta como venta auditada pero no hay plata que esperar.
	turno := turnoConApertura("30.00", "0")

	tot := CalcularTotalesEsperados(turno, []model.Venta{
		ventaMetodo(model.MetodoFiao, "99.99", ""),
	})

	assert.True(t, tot.EfectivoBs.Equal(dec("30.00")))
	assert.True(t, tot.PagoMovilBs.IsZero())
	assert.True(t, tot.TotalBs.Equal(dec("99.99")))
}

func TestEsperadosMetodoDesconocido(t *testing.T) {
	turno := turnoConApertura("0", "0")

	tot := CalcularTotalesEsperados(turno, []model.Venta{
		ventaMetodo(model.MetodoPago("CRYPTO"), "40.00", ""),
	})

	assert.True(t, tot.EfectivoBs.IsZero())
	assert.True(t, tot.OtrosBs.IsZero())
	assert.True(t, tot.TotalBs.Equal(dec("40.00")))
}

func TestEsperadosIgnoraVentaSinPago(t *testing.T) {
	turno := turnoConApertura("0", "0")
	sinPago := model.Venta{TotalBs: dec("500.00")}

	tot := CalcularTotalesEsperados(turno, []model.Venta{sinPago, ventaCash("10.00")})

	assert.True(t, tot.TotalBs.Equal(dec("10.00")))
	assert.True(t, tot.EfectivoBs.Equal(dec("10.00")))
}

func TestEsperadosRedondeaCadaPaso(t *testing.T) {
	// Tres ventas de 0.333: redondeando en cada paso da 0.99, no 1.00.
	turno := turnoConApertura("0", "0")
	ventas := []model.Venta{
		ventaCash("0.333"), ventaCash("0.333"), ventaCash("0.333"),
	}

	tot := CalcularTotalesEsperados(turno, ventas)

	assert.True(t, tot.EfectivoBs.Equal(dec("0.99")), "efectivo_bs = %s", tot.EfectivoBs)
	assert.True(t, tot.TotalBs.Equal(dec("0.99")))
}

func TestEsperadosDeterminista(t *testing.T) {
	turno := turnoConApertura("123.45", "6.78")
	ventas := []model.Venta{
		ventaCash("10.10"),
		ventaMetodo(model.MetodoPagoMovil, "20.20", ""),
		ventaMetodo(model.MetodoFiao, "30.30", ""),
	}

	a := CalcularTotalesEsperados(turno, ventas)
	b := CalcularTotalesEsperados(turno, ventas)

	assert.Equal(t, a, b)
}

// ── CalcularTotalesCorte ─────────────────────────────────────────────────────

func TestCorteSiembraMetodosConocidos(t *testing.T) {
	tot := CalcularTotalesCorte(nil)

	assert.Len(t, tot.PorMetodo, 7)
	for _, m := range model.MetodosConocidos() {
		acum, ok := tot.PorMetodo[m]
		assert.True(t, ok, "falta bucket %s", m)
		assert.True(t, acum.IsZero())
	}
	assert.Zero(t, tot.VentasCount)
}

func TestCorteAgregaPorMetodo(t *testing.T) {
	ventas := []model.Venta{
		ventaCash("100.00"),
		ventaCash("50.00"),
		ventaMetodo(model.MetodoPagoMovil, "75.00", ""),
		ventaMetodo(model.MetodoCashUsd, "36.00", "1.00"),
	}

	tot := CalcularTotalesCorte(ventas)

	assert.Equal(t, 4, tot.VentasCount)
	assert.True(t, tot.TotalBs.Equal(dec("261.00")))
	assert.True(t, tot.TotalUsd.Equal(dec("1.00")))
	assert.True(t, tot.PorMetodo[model.MetodoCashBs].Equal(dec("150.00")))
	assert.True(t, tot.PorMetodo[model.MetodoPagoMovil].Equal(dec("75.00")))
	assert.True(t, tot.EfectivoBs.Equal(dec("150.00")))
	assert.True(t, tot.EfectivoUsd.Equal(dec("1.00")))
	assert.True(t, tot.PagoMovilBs.Equal(dec("75.00")))
}

func TestCorteMetodoDesconocidoNoCreaBucket(t *testing.T) {
	ventas := []model.Venta{
		ventaMetodo(model.MetodoPago("CRYPTO"), "40.00", ""),
	}

	tot := CalcularTotalesCorte(ventas)

	assert.Equal(t, 1, tot.VentasCount)
	assert.True(t, tot.TotalBs.Equal(dec("40.00")))
	assert.Len(t, tot.PorMetodo, 7)
	_, existe := tot.PorMetodo[model.MetodoPago("CRYPTO")]
	assert.False(t, existe)
}

func TestCorteSplitDesglosa(t *testing.T) {
	venta := model.Venta{
		TotalBs: dec("130.00"),
		Pago: &model.Pago{
			Metodo: model.MetodoSplit,
			Split: &model.PagoSplit{
				EfectivoBs:  dec("100.00"),
				PagoMovilBs: dec("30.00"),
			},
		},
	}

	tot := CalcularTotalesCorte([]model.Venta{venta})

	assert.True(t, tot.PorMetodo[model.MetodoSplit].Equal(dec("130.00")))
	assert.True(t, tot.EfectivoBs.Equal(dec("100.00")))
	assert.True(t, tot.PagoMovilBs.Equal(dec("30.00")))
}

func TestCorteIgnoraVentaSinPago(t *testing.T) {
	ventas := []model.Venta{
		{TotalBs: dec("999.00")},
		ventaCash("1.00"),
	}

	tot := CalcularTotalesCorte(ventas)

	assert.Equal(t, 1, tot.VentasCount)
	assert.True(t, tot.TotalBs.Equal(dec("1.00")))
}

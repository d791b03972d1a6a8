package service

// arqueo.go — funciones puras de agregación de caja.
// No tocan la base: reciben el turno y sus ventas ya cargadas, y son
// deterministas: misma entrada, mismo resultado.

import (
	"github.com/shopspring/decimal"

	"github.com/yoeldevsoft25/LA-CAJA-sub008/internal/model"
)

// round2 redondea a centavos. Se aplica después de CADA suma o resta, no solo
// al final, para que los acumulados coincidan centavo a centavo con lo que
// cualquier caja física mostraría paso a paso.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// CalcularTotalesEsperados reconstruye el efectivo que debería haber en la
// gaveta al cierre: siembra Bs/USD con los montos de apertura y recorre las
// ventas despachando por método de pago.
//
// Efectivo con recibido/cambio: la gaveta recibe lo entregado y devuelve el
// vuelto, así que suma recibido y resta cambio; sin recibido se asume pago
// exacto y suma el total. FIAO (crédito de la casa) y métodos desconocidos
// suman al total auditado pero no mueven ningún bucket de caja.
func CalcularTotalesEsperados(turno *model.Turno, ventas []model.Venta) model.TotalesEsperados {
	tot := model.TotalesEsperados{
		EfectivoBs:      round2(turno.MontoAperturaBs),
		EfectivoUsd:     round2(turno.MontoAperturaUsd),
		PagoMovilBs:     decimal.Zero,
		TransferenciaBs: decimal.Zero,
		OtrosBs:         decimal.Zero,
		TotalBs:         decimal.Zero,
		TotalUsd:        decimal.Zero,
	}

	for i := range ventas {
		v := &ventas[i]
		if v.Pago == nil {
			continue
		}

		// Total auditado, incondicional al instrumento.
		tot.TotalBs = round2(tot.TotalBs.Add(round2(v.TotalBs)))
		tot.TotalUsd = round2(tot.TotalUsd.Add(round2(v.TotalUsd)))

		switch v.Pago.Metodo {
		case model.MetodoCashBs:
			if v.Pago.RecibidoBs != nil {
				tot.EfectivoBs = round2(tot.EfectivoBs.Add(round2(*v.Pago.RecibidoBs)))
				if v.Pago.CambioBs != nil && v.Pago.CambioBs.IsPositive() {
					tot.EfectivoBs = round2(tot.EfectivoBs.Sub(round2(*v.Pago.CambioBs)))
				}
			} else {
				tot.EfectivoBs = round2(tot.EfectivoBs.Add(round2(v.TotalBs)))
			}

		case model.MetodoCashUsd:
			if v.Pago.RecibidoUsd != nil {
				tot.EfectivoUsd = round2(tot.EfectivoUsd.Add(round2(*v.Pago.RecibidoUsd)))
				// El vuelto de un pago en dólares sale de la gaveta en Bs.
				if v.Pago.CambioBs != nil && v.Pago.CambioBs.IsPositive() {
					tot.EfectivoBs = round2(tot.EfectivoBs.Sub(round2(*v.Pago.CambioBs)))
				}
			} else {
				tot.EfectivoUsd = round2(tot.EfectivoUsd.Add(round2(v.TotalUsd)))
			}

		case model.MetodoPagoMovil:
			tot.PagoMovilBs = round2(tot.PagoMovilBs.Add(round2(v.TotalBs)))

		case model.MetodoTransfer:
			tot.TransferenciaBs = round2(tot.TransferenciaBs.Add(round2(v.TotalBs)))

		case model.MetodoOtro:
			tot.OtrosBs = round2(tot.OtrosBs.Add(round2(v.TotalBs)))

		case model.MetodoSplit:
			if s := v.Pago.Split; s != nil {
				tot.EfectivoBs = round2(tot.EfectivoBs.Add(round2(s.EfectivoBs)))
				tot.EfectivoUsd = round2(tot.EfectivoUsd.Add(round2(s.EfectivoUsd)))
				tot.PagoMovilBs = round2(tot.PagoMovilBs.Add(round2(s.PagoMovilBs)))
				tot.TransferenciaBs = round2(tot.TransferenciaBs.Add(round2(s.TransferenciaBs)))
				tot.OtrosBs = round2(tot.OtrosBs.Add(round2(s.OtrosBs)))
			}

		default:
			// FIAO y cualquier método desconocido: no mueven caja.
		}
	}

	return tot
}

// CalcularTotalesCorte agrega las ventas para un corte X o Z: conteo, totales
// auditados, desglose por método y un mapa por_metodo sembrado con los siete
// métodos conocidos. Es una vista de ingreso-por-método, no de reconstrucción
// de gaveta, así que no aplica la lógica de recibido/cambio del cierre.
func CalcularTotalesCorte(ventas []model.Venta) model.TotalesCorte {
	tot := model.TotalesCorte{
		TotalBs:         decimal.Zero,
		TotalUsd:        decimal.Zero,
		PorMetodo:       make(map[model.MetodoPago]decimal.Decimal, 7),
		EfectivoBs:      decimal.Zero,
		EfectivoUsd:     decimal.Zero,
		PagoMovilBs:     decimal.Zero,
		TransferenciaBs: decimal.Zero,
		OtrosBs:         decimal.Zero,
	}
	for _, m := range model.MetodosConocidos() {
		tot.PorMetodo[m] = decimal.Zero
	}

	for i := range ventas {
		v := &ventas[i]
		if v.Pago == nil {
			continue
		}

		tot.VentasCount++
		tot.TotalBs = round2(tot.TotalBs.Add(round2(v.TotalBs)))
		tot.TotalUsd = round2(tot.TotalUsd.Add(round2(v.TotalUsd)))

		// Solo los métodos sembrados acumulan bucket; uno desconocido cuenta
		// en los totales de arriba y nada más.
		if acumulado, ok := tot.PorMetodo[v.Pago.Metodo]; ok {
			tot.PorMetodo[v.Pago.Metodo] = round2(acumulado.Add(round2(v.TotalBs)))
		}

		switch v.Pago.Metodo {
		case model.MetodoCashBs:
			tot.EfectivoBs = round2(tot.EfectivoBs.Add(round2(v.TotalBs)))
		case model.MetodoCashUsd:
			tot.EfectivoUsd = round2(tot.EfectivoUsd.Add(round2(v.TotalUsd)))
		case model.MetodoPagoMovil:
			tot.PagoMovilBs = round2(tot.PagoMovilBs.Add(round2(v.TotalBs)))
		case model.MetodoTransfer:
			tot.TransferenciaBs = round2(tot.TransferenciaBs.Add(round2(v.TotalBs)))
		case model.MetodoOtro:
			tot.OtrosBs = round2(tot.OtrosBs.Add(round2(v.TotalBs)))
		case model.MetodoSplit:
			if s := v.Pago.Split; s != nil {
				tot.EfectivoBs = round2(tot.EfectivoBs.Add(round2(s.EfectivoBs)))
				tot.EfectivoUsd = round2(tot.EfectivoUsd.Add(round2(s.EfectivoUsd)))
				tot.PagoMovilBs = round2(tot.PagoMovilBs.Add(round2(s.PagoMovilBs)))
				tot.TransferenciaBs = round2(tot.TransferenciaBs.Add(round2(s.TransferenciaBs)))
				tot.OtrosBs = round2(tot.OtrosBs.Add(round2(s.OtrosBs)))
			}
		}
	}

	return tot
}

package dto

import "github.com/shopspring/decimal"

// ReporteIngresosResponse buckets revenue (precio final cobrado) and profit
// (precio final − suma de costos de reparación) of delivered devices by three
// independent granularities of the delivery date.
//
// Claves: mes "2025-September", semana ISO "2025-38", día "2025-09-17".
type ReporteIngresosResponse struct {
	IngresosMensuales  map[string]decimal.Decimal `json:"ingresos_mensuales"`
	IngresosSemanales  map[string]decimal.Decimal `json:"ingresos_semanales"`
	IngresosDiarios    map[string]decimal.Decimal `json:"ingresos_diarios"`
	GananciasMensuales map[string]decimal.Decimal `json:"ganancias_mensuales"`
	GananciasSemanales map[string]decimal.Decimal `json:"ganancias_semanales"`
	GananciasDiarias   map[string]decimal.Decimal `json:"ganancias_diarias"`
}

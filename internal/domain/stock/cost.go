package stock

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado
// (servicio de dominio) para entradas de mercancía con costo unitario.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentStock int64, currentCost decimal.Decimal, qtyIn int64, costIn decimal.Decimal) decimal.Decimal {
	stock := decimal.NewFromInt(currentStock)
	qty := decimal.NewFromInt(qtyIn)
	sum := stock.Add(qty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(currentCost).Add(qty.Mul(costIn))
	return num.Div(sum)
}

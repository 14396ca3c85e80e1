package pricing

import (
	"github.com/shopspring/decimal"

	"pizzeria-manager/models"
)

// Money rounds an amount to currency precision (2 decimals, half away from zero).
// Arithmetic inside the calculator stays in float64; Money is applied once when an
// amount leaves the calculator for display or persistence.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// RoundedLine is a calculated line in currency precision
type RoundedLine struct {
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// RoundedTotal is an order total in currency precision whose parts add up:
// each line subtotal is the rounded unit price times the quantity, the subtotal is
// the sum of the line subtotals and the total is subtotal plus delivery fee.
type RoundedTotal struct {
	Lines       []RoundedLine
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// RoundTotal rounds the unit prices and the delivery fee and derives every other amount
// from them, so stored and quoted amounts always reconcile to the cent.
func RoundTotal(total models.OrderTotal) RoundedTotal {
	rounded := RoundedTotal{
		Lines:       make([]RoundedLine, len(total.Lines)),
		Subtotal:    decimal.Zero,
		DeliveryFee: Money(total.DeliveryFee),
	}

	for i, line := range total.Lines {
		unit := Money(line.UnitPrice)
		subtotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		rounded.Lines[i] = RoundedLine{UnitPrice: unit, Subtotal: subtotal}
		rounded.Subtotal = rounded.Subtotal.Add(subtotal)
	}

	rounded.Total = rounded.Subtotal.Add(rounded.DeliveryFee)
	return rounded
}

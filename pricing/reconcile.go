package pricing

import (
	"log"

	"github.com/shopspring/decimal"

	"pizzeria-manager/models"
)

// DiscrepancyEpsilon is the largest difference between a displayed and a calculated
// amount that is not reported
var DiscrepancyEpsilon = decimal.NewFromFloat(0.01)

// Reconcile compares the prices the panel displayed with the calculated ones.
// displayedUnitPrices is indexed like total.Lines; nil entries were not displayed.
// The calculated values always win; the returned discrepancies are informational.
func Reconcile(displayedUnitPrices []*float64, displayedSubtotal *float64, total models.OrderTotal) []models.PriceDiscrepancy {
	var discrepancies []models.PriceDiscrepancy

	for i, displayed := range displayedUnitPrices {
		if displayed == nil || i >= len(total.Lines) {
			continue
		}
		if d, ok := compare(*displayed, total.Lines[i].UnitPrice); ok {
			d.Scope = "line"
			d.LineIndex = i
			log.Printf("⚠️  Reconcile: line %d displayed %.2f, calculated %.2f", i, d.Displayed, d.Authoritative)
			discrepancies = append(discrepancies, d)
		}
	}

	if displayedSubtotal != nil {
		if d, ok := compare(*displayedSubtotal, total.Subtotal); ok {
			d.Scope = "subtotal"
			log.Printf("⚠️  Reconcile: subtotal displayed %.2f, calculated %.2f", d.Displayed, d.Authoritative)
			discrepancies = append(discrepancies, d)
		}
	}

	return discrepancies
}

func compare(displayed, authoritative float64) (models.PriceDiscrepancy, bool) {
	delta := decimal.NewFromFloat(authoritative).Sub(decimal.NewFromFloat(displayed))
	if delta.Abs().LessThanOrEqual(DiscrepancyEpsilon) {
		return models.PriceDiscrepancy{}, false
	}
	return models.PriceDiscrepancy{
		Displayed:     displayed,
		Authoritative: authoritative,
		Delta:         delta.InexactFloat64(),
	}, true
}

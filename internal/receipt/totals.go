package receipt

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

// Labels as they appear literally in the receipt markup. Matching is
// case-sensitive and ordered: "Sous-total" must be classified before
// the grand-total branch ever sees the "Total" substring.
const (
	labelSubtotal    = "Sous-total"
	labelDeliveryFee = "Frais de livraison"
	labelTip         = "Pourboire"
	labelCredit      = "Crédit"
	labelTotal       = "Total"
)

// isGrandTotal requires an explicit style signal on the label so rows
// whose text merely contains "Total" cannot claim the grand total.
func isGrandTotal(label *goquery.Selection) bool {
	h := outerHTML(label)
	return strings.Contains(h, `class="total"`) || strings.Contains(h, "font-size:34px")
}

// ExtractTotals scans every table row in the document (the totals
// ledger is not scoped to one table) for two-cell rows pairing a known
// label with a price. Unparseable prices are skipped; when a label
// appears more than once the last occurrence wins.
func ExtractTotals(doc *goquery.Document) models.Totals {
	var totals models.Totals

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		labelP := cells.Eq(0).Find("p").First()
		priceP := cells.Eq(1).Find("p").First()
		if labelP.Length() == 0 || priceP.Length() == 0 {
			return
		}

		label := CleanText(labelP.Text(), false)
		price := parsePrice(CleanText(priceP.Text(), false))
		if price == nil {
			return
		}

		switch {
		case strings.Contains(label, labelSubtotal):
			totals.Subtotal = price
		case strings.Contains(label, labelDeliveryFee):
			totals.DeliveryFee = price
		case strings.Contains(label, labelTip):
			totals.Tip = price
		case strings.Contains(label, labelCredit):
			totals.Credit = price
		case strings.Contains(label, labelTotal) && isGrandTotal(labelP):
			totals.Total = price
		}
	})

	return totals
}

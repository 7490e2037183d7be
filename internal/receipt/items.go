package receipt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

const (
	selItemTable   = "table[role='listitem']"
	selPrimaryText = "p[style*='color:#000001']"
	selRightText   = "p[style*='text-align:right']"
)

var (
	reQuantity = regexp.MustCompile(`^(\d+)x$`)
	// Currency-tolerant: optional euro sign, digits with comma or dot
	// separators. Commas are normalized to dots before parsing, so
	// grouped values like "1,234.56" fail closed to nil.
	rePrice = regexp.MustCompile(`€?\s*([\d,\.]+)`)
)

func parsePrice(text string) *float64 {
	m := rePrice.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ExtractItems walks the single listitem-role table and produces the
// purchase lines in document order. A missing table means an empty
// list, not an error. A row only makes it into the output when a name
// was extracted; quantity and price degrade to nil independently.
func ExtractItems(doc *goquery.Document) []models.LineItem {
	items := []models.LineItem{}

	table := doc.Find(selItemTable).First()
	if table.Length() == 0 {
		return items
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		var item models.LineItem

		// Cell 0: "2x" style quantity marker.
		if qty := cells.Eq(0).Find("p").First(); qty.Length() > 0 {
			if m := reQuantity.FindStringSubmatch(CleanText(qty.Text(), false)); m != nil {
				n, err := strconv.Atoi(m[1])
				if err == nil {
					item.Quantity = &n
				}
			}
		}

		// Cell 1: name in the primary text color, muted siblings are
		// the chosen options. Quantity-looking or tiny fragments are
		// stray markup, not names.
		nameCell := cells.Eq(1)
		if nameP := nameCell.Find(selPrimaryText).First(); nameP.Length() > 0 {
			name := CleanText(nameP.Text(), false)
			if name != "" && !reQuantity.MatchString(name) && len([]rune(name)) > 3 {
				item.Name = &name
				nameCell.Find(selMutedText).Each(func(_ int, p *goquery.Selection) {
					opt := CleanText(p.Text(), false)
					if opt != "" && opt != name {
						item.Options = append(item.Options, opt)
					}
				})
			}
		}

		// Cell 2: right-aligned price.
		if cells.Length() > 2 {
			if priceP := cells.Eq(2).Find(selRightText).First(); priceP.Length() > 0 {
				item.Price = parsePrice(CleanText(priceP.Text(), false))
			}
		}

		if item.Name != nil {
			items = append(items, item)
		}
	})

	return items
}

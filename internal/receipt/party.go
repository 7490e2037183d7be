package receipt

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

// The receipt markup carries no semantic ids. Info blocks are tables
// with the "fluid" class, the party name is the first bold paragraph,
// and the address/phone lines are the muted-grey paragraphs after it.
// Restaurant and customer blocks only differ by alignment.
const (
	selInfoTable = "table.fluid"
	selBoldText  = "p[style*='font-weight:bolder']"
	selMutedText = "p[style*='color:#828585']"
)

// Guards against a bold block that is really some unrelated banner.
const maxPartyNameLen = 100

func outerHTML(s *goquery.Selection) string {
	h, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return h
}

func isRightAligned(table *goquery.Selection) bool {
	h := outerHTML(table)
	return strings.Contains(h, `align="right"`) || strings.Contains(h, "text-align:right")
}

func isLeftAligned(table *goquery.Selection) bool {
	h := outerHTML(table)
	return strings.Contains(h, `align="left"`) || !strings.Contains(h, `align="right"`)
}

// ExtractRestaurant locates the restaurant block: the first left-aligned
// info table with an acceptable bold name.
func ExtractRestaurant(doc *goquery.Document) models.Party {
	return extractParty(doc, isLeftAligned)
}

// ExtractCustomer locates the customer block: the first right-aligned
// info table. When no table qualifies, the greeting heading
// ("Excellent choix, <name>") is a second path to the customer's name.
func ExtractCustomer(doc *goquery.Document) models.Party {
	party := extractParty(doc, isRightAligned)
	if party.Name != nil {
		return party
	}

	doc.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		text := CleanText(h2.Text(), false)
		if !strings.Contains(text, "Excellent choix") {
			return true
		}
		name := CleanText(strings.Replace(text, "Excellent choix,", "", 1), false)
		party.Name = &name
		return false
	})
	return party
}

// extractParty runs the shared block algorithm: pick the first info
// table matching the side discriminator whose bold name passes the
// length guard, then classify its muted lines into phone (leading "+",
// last one wins) and address lines.
func extractParty(doc *goquery.Document, side func(*goquery.Selection) bool) models.Party {
	var party models.Party

	doc.Find(selInfoTable).EachWithBreak(func(_ int, table *goquery.Selection) bool {
		bold := table.Find(selBoldText).First()
		if bold.Length() == 0 {
			return true
		}
		name := CleanText(bold.Text(), false)
		if name == "" || len([]rune(name)) >= maxPartyNameLen {
			return true
		}
		if !side(table) {
			return true
		}

		party.Name = &name

		var lines []string
		table.Find(selMutedText).Each(func(_ int, p *goquery.Selection) {
			text := CleanText(p.Text(), false)
			if text == "" {
				return
			}
			if strings.HasPrefix(text, "+") {
				phone := text
				party.Phone = &phone
				return
			}
			lines = append(lines, text)
		})

		ParseAddressLines(lines).apply(&party)
		return false
	})

	return party
}

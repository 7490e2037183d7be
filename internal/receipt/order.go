package receipt

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	// "Commande n° 1234", also tolerates "n 1234" and "no 1234".
	reOrderHeading = regexp.MustCompile(`(?i)commande n[°o\s]+(\d+)`)
	// Long-form phrase buried in the body text.
	reOrderPhrase = regexp.MustCompile(`(?i)num[ée]ro de commande.*?est[:\s]+(\d+)`)
)

// ExtractOrderNumber scans the headings for the order-number pattern
// and falls back to the full page text. Returns nil when neither path
// matches.
func ExtractOrderNumber(doc *goquery.Document) *string {
	var number *string

	doc.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		m := reOrderHeading.FindStringSubmatch(CleanText(h2.Text(), false))
		if m == nil {
			return true
		}
		number = &m[1]
		return false
	})
	if number != nil {
		return number
	}

	if m := reOrderPhrase.FindStringSubmatch(CleanText(doc.Text(), false)); m != nil {
		number = &m[1]
	}
	return number
}

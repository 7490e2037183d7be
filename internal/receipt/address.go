package receipt

import (
	"regexp"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

var (
	rePostalCode  = regexp.MustCompile(`(\d{5})`)
	rePostalCity  = regexp.MustCompile(`\d{5}([A-Za-z\s]+)$`)
	reLettersOnly = regexp.MustCompile(`^[A-Za-z\s]+$`)
)

// Address is the split form of a free-text address block.
type Address struct {
	Street     *string
	City       *string
	PostalCode *string
}

// ParseAddressLines splits an ordered list of raw address lines into
// street, postal code and city. The first line is always the street.
// The postal code is the first five-digit run found on a later line;
// trailing letters on that same line become the city. When no postal
// code yields a city, the first later line made purely of letters and
// spaces is used instead.
func ParseAddressLines(lines []string) Address {
	var addr Address
	if len(lines) == 0 {
		return addr
	}

	street := CleanText(lines[0], false)
	addr.Street = &street

	for _, line := range lines[1:] {
		m := rePostalCode.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		addr.PostalCode = &m[1]
		if cm := rePostalCity.FindStringSubmatch(line); cm != nil {
			city := CleanText(cm[1], false)
			addr.City = &city
		}
		break
	}

	if addr.City == nil {
		for _, line := range lines[1:] {
			cleaned := CleanText(line, false)
			if rePostalCode.MatchString(cleaned) {
				continue
			}
			if reLettersOnly.MatchString(cleaned) {
				addr.City = &cleaned
				break
			}
		}
	}

	return addr
}

// apply copies the parsed address onto a party record.
func (a Address) apply(p *models.Party) {
	p.Address = a.Street
	p.City = a.City
	p.PostalCode = a.PostalCode
}

package receipt

import (
	"regexp"
	"strconv"
	"time"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

// Receipt files are named like "Mon_12_Aug_2024_19_32_05_.html":
// weekday, day, month abbreviation, year, hour, minute, second.
var reFilename = regexp.MustCompile(`(\w+)_(\d+)_(\w+)_(\d+)_(\d+)_(\d+)_(\d+)_\.html`)

var monthAbbrev = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// DateFromFilename recovers the order timestamp from the receipt's
// filename. It returns nil when the pattern does not match or when the
// numeric fields do not form a valid calendar time. An unknown month
// abbreviation falls back to January; that leniency is inherited from
// the upstream naming scheme, which only ever emits English
// three-letter months.
func DateFromFilename(filename string) *models.OrderDate {
	m := reFilename.FindStringSubmatch(filename)
	if m == nil {
		return nil
	}

	weekday := m[1]
	day, _ := strconv.Atoi(m[2])
	month, ok := monthAbbrev[m[3]]
	if !ok {
		month = time.January
	}
	year, _ := strconv.Atoi(m[4])
	hour, _ := strconv.Atoi(m[5])
	minute, _ := strconv.Atoi(m[6])
	second, _ := strconv.Atoi(m[7])

	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes out-of-range fields instead of failing, so
	// reject anything that did not round-trip.
	if t.Year() != year || t.Month() != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return nil
	}

	return &models.OrderDate{
		Raw:     t.Format("2006-01-02 15:04:05"),
		Date:    t.Format("2006-01-02"),
		Time:    t.Format("15:04:05"),
		Weekday: weekday,
	}
}

// Package receipt extracts structured order records from delivery
// receipt HTML. The markup is styled inconsistently, so every step is
// a heuristic with graceful degradation: missing structure and
// malformed values become nil fields, never errors. Only I/O and
// top-level HTML parsing can fail.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

// ReadDocument reads an HTML file as UTF-8. Files that are not valid
// UTF-8 get a best-effort re-encode that drops undecodable bytes.
func ReadDocument(path string) (*goquery.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(raw)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Extract assembles a full order record from a parsed document. The
// extraction steps are independent; a document missing every queried
// element yields an all-null record with an empty item list.
func Extract(doc *goquery.Document, filename string) models.Order {
	return models.Order{
		Number:     ExtractOrderNumber(doc),
		Date:       DateFromFilename(filename),
		Restaurant: ExtractRestaurant(doc),
		Customer:   ExtractCustomer(doc),
		Items:      ExtractItems(doc),
		Totals:     ExtractTotals(doc),
		SourceFile: filename,
	}
}

// ExtractFile is the single-file entry point used by the batch driver.
func ExtractFile(path string) (models.Order, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return models.Order{}, err
	}
	return Extract(doc, filepath.Base(path)), nil
}

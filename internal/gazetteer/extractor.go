package gazetteer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Captured fallback names must be plausible locality lengths.
const (
	minCaptureLen = 4
	maxCaptureLen = 49
)

// fallbackPatterns capture capitalized phrases following locational cues
// when no catalog entry matches. Checked in order; the first pattern whose
// capture falls within the length bounds wins.
var fallbackPatterns = []*regexp.Regexp{
	// "in Shastri Park, Delhi" / "at Khanpur, Delhi" / "near Jasola, Delhi"
	regexp.MustCompile(`(?:in|at|near)\s+([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*)\s*,\s*(?:New\s+)?Delhi`),
	// "near Gagan Vihar", "in Krishna Colony", "at Shastri Nagar"
	regexp.MustCompile(`(?:in|at|near)\s+([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*\s+(?:Colony|Nagar|Vihar|Enclave|Puri|Bagh|Garden|Gardens|Extension|Market|Chowk))`),
	// "Sector 12 Dwarka" style sector references
	regexp.MustCompile(`((?:[A-Z][A-Za-z]+\s+)?Sector\s+\d{1,2})`),
}

// Extractor finds the most likely locality mention in free text.
type Extractor struct {
	catalog []Locality
}

// NewExtractor builds an extractor over the standard Delhi catalog.
func NewExtractor() *Extractor {
	return &Extractor{catalog: Catalog()}
}

// Extract returns the first catalog entry whose name appears in the text,
// case-insensitively. The catalog's specificity-first order guarantees
// "Dwarka Sector 10" wins over "Dwarka" when both appear. If no entry
// matches, the fallback patterns are tried against the original-case text.
// Returns ("", false) when nothing matches; the caller substitutes the
// city-wide default.
func (e *Extractor) Extract(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	normalized := strings.ToLower(removeAccents(text))
	for _, loc := range e.catalog {
		if strings.Contains(normalized, strings.ToLower(loc.Name)) {
			return loc.Name, true
		}
	}

	for _, pattern := range fallbackPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		captured := strings.TrimSpace(match[1])
		if len(captured) >= minCaptureLen && len(captured) <= maxCaptureLen {
			return captured, true
		}
	}

	return "", false
}

// removeAccents strips diacritical marks so transliterated names like
// "Hauz Khās" still match the catalog.
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

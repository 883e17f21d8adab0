package eddn

import (
	"regexp"
	"strings"

	"github.com/galmarket/eddn-ingest/internal/entity"
)

var (
	separatorRuns  = regexp.MustCompile(`[\s\-]+`)
	strippedChars  = regexp.MustCompile(`[.'()\[\],]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// NormalizeSymbol derives the feed's symbolic name from a catalog display
// name, covering the usual punctuation, hyphen and spacing variants
// between the two. Idempotent: normalizing a normalized symbol is a
// no-op.
func NormalizeSymbol(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", "and")
	s = separatorRuns.ReplaceAllString(s, "_")
	s = strippedChars.ReplaceAllString(s, "")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return s
}

// BuildSymbolMap maps normalized commodity symbols to catalog item ids.
// On collision the first item keeps the symbol; later duplicates are
// dropped.
func BuildSymbolMap(items []entity.Item) map[string]int64 {
	symbols := make(map[string]int64, len(items))
	for _, item := range items {
		symbol := NormalizeSymbol(item.Name)
		if _, ok := symbols[symbol]; ok {
			continue
		}
		symbols[symbol] = item.ID
	}

	return symbols
}

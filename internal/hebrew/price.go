package hebrew

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"ticket-verify/models"
)

// Plausible ticket price band. Values outside are OCR noise, not candidates.
var (
	minPrice = decimal.Zero
	maxPrice = decimal.NewFromInt(10000)
)

// pricePattern associates one regular expression with its base confidence.
// The slice order is the precedence policy: labeled Hebrew forms first, then
// bare shekel amounts, then the English equivalents.
type pricePattern struct {
	re   *regexp.Regexp
	base float64
}

var pricePatterns = []pricePattern{
	{regexp.MustCompile(`(?:מחיר|סכום|עלות|לתשלום)\s*[:\-]?\s*₪?\s*(\d+(?:\.\d{1,2})?)`), 0.8},
	{regexp.MustCompile(`₪\s*(\d+(?:\.\d{1,2})?)`), 0.8},
	{regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s*₪`), 0.8},
	{regexp.MustCompile(`(?i)\b(?:price|amount|cost|total)\b\s*[:\-]?\s*[$€]?\s*(\d+(?:\.\d{1,2})?)`), 0.7},
	{regexp.MustCompile(`[$€]\s*(\d+(?:\.\d{1,2})?)`), 0.7},
}

var priceLabelWords = []string{"מחיר", "סכום", "עלות", "לתשלום", "price", "amount", "cost", "total"}

// ExtractPrices scans normalized text for plausible ticket prices. Candidates
// are sorted by confidence (descending), ties broken by earliest position.
func ExtractPrices(text string) []models.ExtractedField[decimal.Decimal] {
	var results []models.ExtractedField[decimal.Decimal]
	seen := map[int]bool{} // value start offset, claimed by the first pattern that hit it

	for _, p := range pricePatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			valStart, valEnd := loc[2], loc[3]
			if seen[valStart] {
				continue
			}

			value, err := decimal.NewFromString(text[valStart:valEnd])
			if err != nil {
				continue
			}
			if !value.GreaterThan(minPrice) || !value.LessThan(maxPrice) {
				continue
			}
			seen[valStart] = true

			confidence := p.base
			ctx := surroundingContext(text, loc[0], loc[1])
			if hasNearbyLabel(text, valStart) {
				confidence += 0.15
			}
			if hasAdjacentCurrency(text, valStart, valEnd) {
				confidence += 0.1
			}
			if confidence > 1.0 {
				confidence = 1.0
			}

			results = append(results, models.ExtractedField[decimal.Decimal]{
				Value:      value,
				Confidence: confidence,
				Context:    ctx,
				Position:   utf8.RuneCountInString(text[:valStart]),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].Position < results[j].Position
	})
	return results
}

// hasNearbyLabel checks the 15 runes preceding the value for a price label.
func hasNearbyLabel(text string, start int) bool {
	before := []rune(text[:start])
	if len(before) > 15 {
		before = before[len(before)-15:]
	}
	window := strings.ToLower(string(before))
	for _, w := range priceLabelWords {
		if strings.Contains(window, w) {
			return true
		}
	}
	return false
}

// hasAdjacentCurrency checks for a currency symbol within 3 runes of the value.
func hasAdjacentCurrency(text string, start, end int) bool {
	before := []rune(text[:start])
	if len(before) > 3 {
		before = before[len(before)-3:]
	}
	after := []rune(text[end:])
	if len(after) > 3 {
		after = after[:3]
	}
	window := string(before) + string(after)
	return strings.ContainsAny(window, "₪$€")
}

// surroundingContext returns up to 20 runes on each side of a match.
func surroundingContext(text string, start, end int) string {
	before := []rune(text[:start])
	if len(before) > 20 {
		before = before[len(before)-20:]
	}
	after := []rune(text[end:])
	if len(after) > 20 {
		after = after[:20]
	}
	return string(before) + text[start:end] + string(after)
}

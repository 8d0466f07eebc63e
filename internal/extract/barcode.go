// Package extract pulls barcode candidates out of raw OCR text for the
// upload and verification pipeline.
package extract

import (
	"regexp"
	"unicode/utf8"

	"ticket-verify/models"
)

// barcodePatterns is evaluated strictly in order; the first pattern that
// yields any match is used exclusively, even when its matches look odd.
var barcodePatterns = []struct {
	re         *regexp.Regexp
	confidence float64
}{
	{regexp.MustCompile(`\b\d{12,13}\b`), 0.9}, // EAN/UPC class
	{regexp.MustCompile(`\b[A-Za-z0-9]{8,20}\b`), 0.7},
	{regexp.MustCompile(`\d{8,}`), 0.5},
}

// Barcode returns the single best barcode candidate found in text, or nil.
// Within the winning pattern the longest match is kept; equal lengths keep
// the first occurrence (a left-to-right greatest-length fold).
func Barcode(text string) *models.ExtractedField[string] {
	for _, p := range barcodePatterns {
		locs := p.re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}

		best := locs[0]
		for _, loc := range locs[1:] {
			if loc[1]-loc[0] > best[1]-best[0] {
				best = loc
			}
		}

		return &models.ExtractedField[string]{
			Value:      text[best[0]:best[1]],
			Confidence: p.confidence,
			Context:    surroundingContext(text, best[0], best[1]),
			Position:   utf8.RuneCountInString(text[:best[0]]),
		}
	}
	return nil
}

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

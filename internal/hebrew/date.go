package hebrew

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"ticket-verify/models"
)

// Years outside this band are OCR noise and silently dropped.
const (
	minEventYear = 2020
	maxEventYear = 2030
)

var hebrewMonths = map[string]int{
	"ינואר":   1,
	"פברואר":  2,
	"מרץ":     3,
	"אפריל":   4,
	"מאי":     5,
	"יוני":    6,
	"יולי":    7,
	"אוגוסט":  8,
	"ספטמבר":  9,
	"אוקטובר": 10,
	"נובמבר":  11,
	"דצמבר":   12,
}

var englishMonths = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// datePattern couples a regular expression with the resolver that turns its
// submatches into day/month/year. Order encodes precedence.
type datePattern struct {
	re      *regexp.Regexp
	resolve func(sub []string) (day, month, year int, ok bool)
	hebrew  bool
}

var datePatterns = []datePattern{
	// 15/03/2025 or 15.03.2025
	{
		re: regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{4})`),
		resolve: func(sub []string) (int, int, int, bool) {
			d, _ := strconv.Atoi(sub[1])
			m, _ := strconv.Atoi(sub[2])
			y, _ := strconv.Atoi(sub[3])
			return d, m, y, true
		},
	},
	// 15 במרץ 2025
	{
		re: regexp.MustCompile(`(\d{1,2})\s+ב?(ינואר|פברואר|מרץ|אפריל|מאי|יוני|יולי|אוגוסט|ספטמבר|אוקטובר|נובמבר|דצמבר)\s+(\d{4})`),
		resolve: func(sub []string) (int, int, int, bool) {
			d, _ := strconv.Atoi(sub[1])
			m, ok := hebrewMonths[sub[2]]
			y, _ := strconv.Atoi(sub[3])
			return d, m, y, ok
		},
		hebrew: true,
	},
	// 15 Mar 2025, 15 March, 2025
	{
		re: regexp.MustCompile(`(?i)(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+(\d{4})`),
		resolve: func(sub []string) (int, int, int, bool) {
			d, _ := strconv.Atoi(sub[1])
			m, ok := englishMonths[strings.ToLower(sub[2])]
			y, _ := strconv.Atoi(sub[3])
			return d, m, y, ok
		},
	},
}

// ExtractDates scans normalized text for event dates. Every accepted
// candidate is emitted in DD/MM/YYYY form regardless of the input format.
func ExtractDates(text string) []models.ExtractedField[string] {
	var results []models.ExtractedField[string]
	seen := map[int]bool{}

	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if seen[loc[0]] {
				continue
			}
			sub := submatches(text, loc)
			day, month, year, ok := p.resolve(sub)
			if !ok || day < 1 || day > 31 || month < 1 || month > 12 {
				continue
			}
			if year < minEventYear || year > maxEventYear {
				continue
			}
			seen[loc[0]] = true

			confidence := 0.7
			if p.hebrew {
				confidence += 0.2
			}

			results = append(results, models.ExtractedField[string]{
				Value:      fmt.Sprintf("%02d/%02d/%04d", day, month, year),
				Confidence: confidence,
				Context:    surroundingContext(text, loc[0], loc[1]),
				Position:   utf8.RuneCountInString(text[:loc[0]]),
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

// submatches materializes submatch strings from a FindAllStringSubmatchIndex
// location, with empty strings for unmatched groups.
func submatches(text string, loc []int) []string {
	sub := make([]string, len(loc)/2)
	for i := range sub {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			sub[i] = text[start:end]
		}
	}
	return sub
}

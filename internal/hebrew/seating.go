package hebrew

import "regexp"

// SeatingFields holds the per-field seating values found in ticket text.
// Empty string means the field was not present.
type SeatingFields struct {
	Section string `json:"section,omitempty"`
	Row     string `json:"row,omitempty"`
	Seat    string `json:"seat,omitempty"`
	Gate    string `json:"gate,omitempty"`
}

// seatingPatterns maps each seating field to its ordered label patterns,
// Hebrew labels before the English ones. First match per field wins.
var seatingPatterns = []struct {
	field    string
	patterns []*regexp.Regexp
}{
	{"section", []*regexp.Regexp{
		regexp.MustCompile(`(?:יציע|אזור|בלוק)\s*[:\-]?\s*([A-Za-zא-ת0-9]+)`),
		regexp.MustCompile(`(?i)\b(?:section|block)\b\s*[:\-]?\s*([A-Za-z0-9]+)`),
	}},
	{"row", []*regexp.Regexp{
		regexp.MustCompile(`שורה\s*[:\-]?\s*([A-Za-zא-ת0-9]+)`),
		regexp.MustCompile(`(?i)\brow\b\s*[:\-]?\s*([A-Za-z0-9]+)`),
	}},
	{"seat", []*regexp.Regexp{
		regexp.MustCompile(`(?:מושב|כיסא|כסא)\s*[:\-]?\s*([A-Za-zא-ת0-9]+)`),
		regexp.MustCompile(`(?i)\bseat\b\s*[:\-]?\s*([A-Za-z0-9]+)`),
	}},
	{"gate", []*regexp.Regexp{
		regexp.MustCompile(`שער\s*[:\-]?\s*([A-Za-zא-ת0-9]+)`),
		regexp.MustCompile(`(?i)\bgate\b\s*[:\-]?\s*([A-Za-z0-9]+)`),
	}},
}

// ExtractSeating matches row/seat/section/gate independently. Unlike the
// price and date extractors it returns at most one value per field, and the
// overall confidence is matched-field-count * 0.25 capped at 1.0.
func ExtractSeating(text string) (SeatingFields, float64) {
	var fields SeatingFields
	matched := 0

	for _, fp := range seatingPatterns {
		for _, re := range fp.patterns {
			sub := re.FindStringSubmatch(text)
			if sub == nil {
				continue
			}
			switch fp.field {
			case "section":
				fields.Section = sub[1]
			case "row":
				fields.Row = sub[1]
			case "seat":
				fields.Seat = sub[1]
			case "gate":
				fields.Gate = sub[1]
			}
			matched++
			break
		}
	}

	confidence := float64(matched) * 0.25
	if confidence > 1.0 {
		confidence = 1.0
	}
	return fields, confidence
}

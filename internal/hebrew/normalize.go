// Package hebrew canonicalizes Hebrew/English mixed ticket text and extracts
// structured fields (price, date, seating) from OCR output.
package hebrew

import (
	"regexp"
	"strings"
	"unicode"
)

// Language classifies the script composition of a text blob.
type Language string

const (
	LanguageHebrew  Language = "hebrew"
	LanguageEnglish Language = "english"
	LanguageMixed   Language = "mixed"
)

// NormalizedText is the output of Normalize.
type NormalizedText struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Language   Language `json:"language"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize strips directional controls and niqqud, canonicalizes quote-like
// characters to `"`, collapses whitespace and classifies the script mix.
// Pure and deterministic.
func Normalize(text string) NormalizedText {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case isBidiControl(r):
			return -1
		case isNiqqud(r):
			return -1
		case isQuoteLike(r):
			return '"'
		}
		return r
	}, text)

	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	confidence := 1.0
	if len([]rune(cleaned)) < 3 {
		confidence *= 0.3
	}
	if containsArtifacts(cleaned) {
		confidence *= 0.5
	}

	return NormalizedText{
		Text:       cleaned,
		Confidence: confidence,
		Language:   classifyLanguage(cleaned),
	}
}

// classifyLanguage counts Hebrew-block vs Latin letters. A script wins when
// it outnumbers the other by more than 2x.
func classifyLanguage(s string) Language {
	var hebrewCount, latinCount int
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Hebrew, r):
			hebrewCount++
		case unicode.Is(unicode.Latin, r):
			latinCount++
		}
	}
	switch {
	case hebrewCount > 2*latinCount && hebrewCount > 0:
		return LanguageHebrew
	case latinCount > 2*hebrewCount && latinCount > 0:
		return LanguageEnglish
	default:
		return LanguageMixed
	}
}

// isBidiControl reports zero-width directional formatting characters. These
// show up in copy-pasted RTL text and must never survive normalization.
func isBidiControl(r rune) bool {
	switch r {
	case '\u200e', '\u200f', '\u061c', '\ufeff':
		return true
	}
	return (r >= '\u202a' && r <= '\u202e') || (r >= '\u2066' && r <= '\u2069')
}

// isNiqqud reports Hebrew vowel points and cantillation marks (U+0591-U+05C7).
func isNiqqud(r rune) bool {
	return r >= '֑' && r <= 'ׇ'
}

func isQuoteLike(r rune) bool {
	switch r {
	case '`', '\'', '"', '‘', '’', '“', '”', '׳', '״':
		return true
	}
	return false
}

// containsArtifacts detects OCR garbage markers: the Unicode replacement
// character and box-drawing characters that scanners emit on unreadable rows.
func containsArtifacts(s string) bool {
	for _, r := range s {
		if r == '�' || (r >= '─' && r <= '╿') {
			return true
		}
	}
	return false
}

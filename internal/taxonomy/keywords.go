package taxonomy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenize normalizes text and splits it into alphanumeric tokens.
// Normalization lower-cases and strips diacritics so "Sécurité" and
// "securite" produce the same token.
func Tokenize(text string) []string {
	text = normalizeText(text)

	tokens := make([]string, 0, len(text)/5)
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// ExtractKeywords returns the matching vocabulary of a text: stop-word
// filtered single tokens plus every contiguous 2-word and 3-word phrase
// from the unfiltered token run. Phrases deliberately keep stop words
// so "power of attorney" survives extraction.
func ExtractKeywords(text string) map[string]struct{} {
	tokens := Tokenize(text)
	keywords := make(map[string]struct{}, len(tokens)*2)

	for _, tok := range tokens {
		if !isStopWord(tok) {
			keywords[tok] = struct{}{}
		}
	}

	for i := 0; i+1 < len(tokens); i++ {
		keywords[tokens[i]+" "+tokens[i+1]] = struct{}{}
	}
	for i := 0; i+2 < len(tokens); i++ {
		keywords[tokens[i]+" "+tokens[i+1]+" "+tokens[i+2]] = struct{}{}
	}

	return keywords
}

// NormalizeName canonicalizes a category name for matching: the same
// normalization as Tokenize, with tokens re-joined by single spaces.
func NormalizeName(name string) string {
	return strings.Join(Tokenize(name), " ")
}

// normalizeText lower-cases and removes combining diacritical marks.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Package normalize implements the text normalization and tokenization
// contract shared by the indexer and the query engine. Both sides must
// call Tokenize identically, or the dictionary built at index time will
// never line up with terms produced from a query.
package normalize

import "unicode"

const (
	zwnj      = '‌'
	arabicYeh = 'ي'
	arabicKaf = 'ك'
	persianYe = 'ی'
	persianKe = 'ک'

	suffixHa = "ها"
	suffixAn = "ان"
)

// NormalizeText folds Arabic letter variants to Persian, lowercases
// alphanumerics, and turns every other rune (including ZWNJ and script
// boundaries) into a single separating space.
func NormalizeText(input string) string {
	out := make([]rune, 0, len(input))

	// lastWasDigit tracks the category of the previous *emitted*
	// alphanumeric rune: nil = unknown/reset, true = digit, false = letter.
	var lastWasDigit *bool

	emit := func(r rune, isDigit bool) {
		if lastWasDigit != nil {
			if (*lastWasDigit && !isDigit) || (!*lastWasDigit && isDigit) {
				out = append(out, ' ')
			}
		}
		out = append(out, r)
		v := isDigit
		lastWasDigit = &v
	}

	for _, c := range input {
		switch c {
		case arabicYeh:
			emit(persianYe, false)
		case arabicKaf:
			emit(persianKe, false)
		case zwnj:
			out = append(out, ' ')
			lastWasDigit = nil
		default:
			if unicode.IsLetter(c) || unicode.IsNumber(c) {
				emit(unicode.ToLower(c), unicode.IsNumber(c))
			} else {
				out = append(out, ' ')
				lastWasDigit = nil
			}
		}
	}

	return string(out)
}

// Tokenize splits normalized text on whitespace runs and strips the two
// recognized Persian plural/nisbat suffixes ("ها", "ان") from words
// longer than four characters. At most one suffix is stripped per word,
// and only the first matching suffix in declaration order applies.
func Tokenize(input string) []string {
	normalized := NormalizeText(input)

	var tokens []string
	var word []rune

	flush := func() {
		if len(word) == 0 {
			return
		}
		tokens = append(tokens, stripSuffix(word))
		word = word[:0]
	}

	for _, r := range normalized {
		if r == ' ' {
			flush()
			continue
		}
		word = append(word, r)
	}
	flush()

	return tokens
}

func stripSuffix(word []rune) string {
	if len(word) <= 4 {
		return string(word)
	}
	if hasRuneSuffix(word, suffixHa) {
		return string(word[:len(word)-2])
	}
	if hasRuneSuffix(word, suffixAn) {
		return string(word[:len(word)-2])
	}
	return string(word)
}

func hasRuneSuffix(word []rune, suffix string) bool {
	s := []rune(suffix)
	if len(word) < len(s) {
		return false
	}
	for i, r := range s {
		if word[len(word)-len(s)+i] != r {
			return false
		}
	}
	return true
}

package template

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leapfrag/pkg/token"
)

// Low-level readers. Each returns the end offset of the construct that starts
// at i; none of them writes output.

func runeAt(s string, i int) (rune, int) {
	if i >= len(s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s[i:])
}

// skipSpace returns the offset of the first non-whitespace rune at or after i.
func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := runeAt(s, i)
		if !token.IsWhitespace(r) {
			break
		}
		i += size
	}
	return i
}

// scanWord returns the end of the identifier run starting at i.
func scanWord(s string, i int) int {
	for i < len(s) {
		r, size := runeAt(s, i)
		if !token.IsIdentifierPart(r) {
			break
		}
		i += size
	}
	return i
}

// scanString returns the end of the single-quoted literal whose opening quote
// is at i. A doubled quote does not end the literal. Unterminated literals run
// to the end of input.
func scanString(s string, i int) int {
	i++ // opening quote
	for i < len(s) {
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(s)
}

// scanQuoted returns the end of the quoted identifier opened at i and closed
// by closeQuote. A doubled close quote is an escaped character. ok is false
// when the identifier is unterminated, in which case end is len(s).
func scanQuoted(s string, i int, closeQuote rune) (end int, ok bool) {
	_, size := runeAt(s, i)
	i += size
	for i < len(s) {
		r, size := runeAt(s, i)
		i += size
		if r != closeQuote {
			continue
		}
		if next, nsize := runeAt(s, i); nsize > 0 && next == closeQuote {
			i += nsize
			continue
		}
		return i, true
	}
	return len(s), false
}

// scanNumber returns the end of the numeric literal at i: digits, an optional
// fraction and an optional exponent.
func scanNumber(s string, i int) int {
	for i < len(s) && token.IsDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && token.IsDigit(rune(s[i])) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && token.IsDigit(rune(s[j])) {
			i = j
			for i < len(s) && token.IsDigit(rune(s[i])) {
				i++
			}
		}
	}
	return i
}

// scanComment returns the end of the comment at i, or i if none starts there.
func scanComment(s string, i int) int {
	switch {
	case strings.HasPrefix(s[i:], "--"):
		if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
			return i + nl
		}
		return len(s)
	case strings.HasPrefix(s[i:], "/*"):
		if end := strings.Index(s[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 2
		}
		return len(s)
	}
	return i
}

// scanZoneContinuation matches "with time zone", "without time zone" or
// "zone" after a time/timestamp prefix ending at i. It returns the end of the
// continuation, or i when none matches.
func scanZoneContinuation(s string, i int) int {
	for _, words := range token.ZoneContinuations {
		if end, ok := matchWords(s, i, words); ok {
			return end
		}
	}
	return i
}

// scanIntervalQualifier matches the unit tail of an interval literal whose
// string ends at i: "day", "hour(2)", "year to month", "day to second(3)".
// It returns the end of the tail, or i when none follows.
func scanIntervalQualifier(s string, i int) int {
	end, ok := matchIntervalUnit(s, i)
	if !ok {
		return i
	}
	if to, ok := matchWords(s, end, []string{"to"}); ok {
		if last, ok := matchIntervalUnit(s, to); ok {
			return last
		}
	}
	return end
}

// matchIntervalUnit matches one unit word after whitespace at i, with an
// optional parenthesised precision.
func matchIntervalUnit(s string, i int) (int, bool) {
	j := skipSpace(s, i)
	if j == i {
		return 0, false
	}
	end := scanWord(s, j)
	if end == j || !token.IsIntervalUnit(strings.ToLower(s[j:end])) {
		return 0, false
	}
	if end < len(s) && s[end] == '(' {
		k := end + 1
		for k < len(s) && (token.IsDigit(rune(s[k])) || s[k] == ',' || s[k] == ' ') {
			k++
		}
		if k > end+1 && k < len(s) && s[k] == ')' {
			end = k + 1
		}
	}
	return end, true
}

// matchWords matches whitespace-separated words (case-insensitive) starting
// after optional whitespace at i.
func matchWords(s string, i int, words []string) (int, bool) {
	for _, w := range words {
		j := skipSpace(s, i)
		if j == i {
			return 0, false
		}
		end := scanWord(s, j)
		if !strings.EqualFold(s[j:end], w) {
			return 0, false
		}
		i = end
	}
	return i, true
}

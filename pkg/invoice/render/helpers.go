package render

import (
	"strings"
	"unicode/utf8"
)

// ReplaceFirst substitutes the first occurrence of token in text. It reports
// false, and returns text unchanged, when the token does not occur. An empty
// token never matches.
func ReplaceFirst(text, token, value string) (string, bool) {
	if token == "" {
		return text, false
	}
	idx := strings.Index(text, token)
	if idx < 0 {
		return text, false
	}
	return text[:idx] + value + text[idx+len(token):], true
}

// RuneLengths returns the length in runes of every string
func RuneLengths(texts []string) []int {
	lengths := make([]int, len(texts))
	for i, s := range texts {
		lengths[i] = utf8.RuneCountInString(s)
	}
	return lengths
}

// Redistribute slices text into len(lengths) pieces. Piece i takes the next
// lengths[i] runes; pieces past the end of text are empty and runes left over
// after the last piece are appended to it.
func Redistribute(lengths []int, text string) []string {
	out := make([]string, len(lengths))
	if len(lengths) == 0 {
		return out
	}

	rest := text
	for i, n := range lengths {
		if rest == "" {
			break
		}
		cut := byteOffset(rest, n)
		out[i] = rest[:cut]
		rest = rest[cut:]
	}
	if rest != "" {
		out[len(out)-1] += rest
	}
	return out
}

// byteOffset returns the byte index just past the first n runes of s, or
// len(s) when s is shorter.
func byteOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

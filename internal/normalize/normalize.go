// Package normalize canonicalizes human-readable place names into comparable
// lowercase tokens. Identifier derivation and relevance ranking both operate
// on its output space.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const asciiLimit = 0x7F

// Normalize maps an arbitrary string to a canonical lowercase token stream
// with no diacritics or punctuation. The German letters ä, ö, ü and ß become
// the digraphs ae, oe, ue and ss; other precomposed letters lose their
// combining marks through canonical decomposition; separator characters
// (space, slash, hyphen, parentheses) collapse into at most one occurrence of
// the provided separator string, never at the start or end of the result.
// An empty separator drops separator characters entirely. The function is
// total: every input, including the empty string, yields a defined result.
func Normalize(input string, separator string) string {
	var builder strings.Builder
	builder.Grow(len(input))

	// A separator is emitted lazily, just before the next real character,
	// so trailing separator runs in the input never reach the output.
	separatorPending := false

	for _, codepoint := range input {
		if digraph, isDigraph := digraphFor(codepoint); isDigraph {
			appendToken(&builder, separator, &separatorPending, digraph)
			continue
		}
		if isSeparatorRune(codepoint) {
			separatorPending = true
			continue
		}
		folded := foldASCII(codepoint)
		if isCanonicalRune(folded) {
			appendToken(&builder, separator, &separatorPending, string(folded))
			continue
		}
		if codepoint > asciiLimit {
			if base, usable := decomposedBase(codepoint); usable {
				appendToken(&builder, separator, &separatorPending, string(base))
			}
			continue
		}
		// Remaining ASCII symbols carry no content and do not touch the
		// pending-separator state.
	}

	return builder.String()
}

// digraphFor returns the fixed phonetic digraph for the German special
// letters. The table runs ahead of canonical decomposition: NFD would reduce
// ä to a bare a plus a combining mark, losing the e this domain requires.
func digraphFor(codepoint rune) (string, bool) {
	switch codepoint {
	case 'ä', 'Ä':
		return "ae", true
	case 'ö', 'Ö':
		return "oe", true
	case 'ü', 'Ü':
		return "ue", true
	case 'ß':
		return "ss", true
	default:
		return "", false
	}
}

func isSeparatorRune(codepoint rune) bool {
	switch codepoint {
	case ' ', '/', '-', '(', ')':
		return true
	default:
		return false
	}
}

// foldASCII lowercases A–Z only; folding is locale independent by contract.
func foldASCII(codepoint rune) rune {
	if codepoint >= 'A' && codepoint <= 'Z' {
		return codepoint + ('a' - 'A')
	}
	return codepoint
}

func isCanonicalRune(codepoint rune) bool {
	return (codepoint >= 'a' && codepoint <= 'z') || (codepoint >= '0' && codepoint <= '9')
}

// decomposedBase applies canonical decomposition to a single codepoint and
// keeps only the base letter. A codepoint that decomposition leaves unchanged
// is some other symbol and contributes nothing.
func decomposedBase(codepoint rune) (rune, bool) {
	decomposed := []rune(norm.NFD.String(string(codepoint)))
	if len(decomposed) == 0 || decomposed[0] == codepoint {
		return 0, false
	}
	base := foldASCII(decomposed[0])
	if !isCanonicalRune(base) {
		return 0, false
	}
	return base, true
}

func appendToken(builder *strings.Builder, separator string, separatorPending *bool, token string) {
	if *separatorPending && builder.Len() > 0 && separator != "" {
		builder.WriteString(separator)
	}
	*separatorPending = false
	builder.WriteString(token)
}

package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

// Package-level compiled regex patterns for performance
var (
	// numericTokenRegex accepts integer and decimal literals ("2", "2.5", "2,5")
	numericTokenRegex = regexp.MustCompile(`^\d+([.,]\d+)?$`)

	digitRegex = regexp.MustCompile(`\d`)
)

// lineItemCandidate is a number-anchored span of the utterance pending
// product and price resolution. It lives only for the duration of one
// Reply call.
type lineItemCandidate struct {
	anchor string   // numeric token that opened the candidate, "" means implicit quantity 1
	words  []string // accumulated text tokens
}

func (c lineItemCandidate) text() string {
	return strings.Join(c.words, " ")
}

// isNumericToken reports whether a normalized token counts as a quantity:
// a digit literal or a spelled number word.
func isNumericToken(token string) bool {
	if numericTokenRegex.MatchString(token) {
		return true
	}
	_, ok := numberWords[token]
	return ok
}

// collapsePunct turns list punctuation into spaces. A single separator is
// kept only when it sits between two digits, so decimal literals like "2.5"
// and "2,5" survive while "arroz,3" splits into two tokens.
func collapsePunct(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != ',' && r != ';' && r != '.' {
			b.WriteRune(r)
			continue
		}
		end := i
		for end < len(runes) && (runes[end] == ',' || runes[end] == ';' || runes[end] == '.') {
			end++
		}
		betweenDigits := end == i+1 &&
			i > 0 && unicode.IsDigit(runes[i-1]) &&
			end < len(runes) && unicode.IsDigit(runes[end])
		if betweenDigits {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
		i = end - 1
	}
	return b.String()
}

// segment splits a normalized utterance into ordered line-item candidates
// using number-triggered grouping: a numeric token opens a new candidate and
// the following text tokens accumulate into it until the next numeric token.
//
// The trailing candidate is always flushed at end of input; the last spoken
// item must never be lost.
func segment(normalized string) []lineItemCandidate {
	tokens := strings.Fields(collapsePunct(normalized))

	var out []lineItemCandidate
	var open *lineItemCandidate
	prev := ""

	for _, token := range tokens {
		switch {
		case isNumericToken(token) && !numericGuards[prev]:
			switch {
			case open == nil:
				open = &lineItemCandidate{anchor: token}
			case len(open.words) > 0:
				out = append(out, *open)
				open = &lineItemCandidate{anchor: token}
			default:
				// consecutive numbers with no text in between: the
				// latest one wins as the quantity anchor
				open.anchor = token
			}
		case connectorWords[token] && (open == nil || len(open.words) == 0):
			// leading connector, carries no signal

		default:
			if open == nil {
				open = &lineItemCandidate{}
			}
			open.words = append(open.words, token)
		}
		prev = token
	}

	if open != nil && (len(open.words) > 0 || open.anchor != "") {
		out = append(out, *open)
	}
	return out
}

package browser

import (
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

type spanOp int

const (
	spanEqual spanOp = iota
	spanDelete
	spanInsert
)

// diffSpan is a run of text that is common to both values, only in the
// old one, or only in the new one.
type diffSpan struct {
	text string
	op   spanOp
}

// wordDiff compares two values word by word. Whitespace runs are tokens of
// their own, so the spans joined back together spell out both values.
func wordDiff(old, cur string) []diffSpan {
	a, b := splitWords(old), splitWords(cur)
	m := difflib.NewMatcher(a, b)

	var spans []diffSpan
	add := func(op spanOp, words []string) {
		for _, w := range words {
			if n := len(spans); n > 0 && spans[n-1].op == op {
				spans[n-1].text += w
				continue
			}
			spans = append(spans, diffSpan{text: w, op: op})
		}
	}
	for _, c := range m.GetOpCodes() {
		switch c.Tag {
		case 'e':
			add(spanEqual, a[c.I1:c.I2])
		case 'd':
			add(spanDelete, a[c.I1:c.I2])
		case 'i':
			add(spanInsert, b[c.J1:c.J2])
		case 'r':
			add(spanDelete, a[c.I1:c.I2])
			add(spanInsert, b[c.J1:c.J2])
		}
	}
	return spans
}

// splitWords cuts s into alternating runs of space and non-space.
func splitWords(s string) []string {
	var words []string
	start := 0
	prev := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > 0 && space != prev {
			words = append(words, s[start:i])
			start = i
		}
		prev = space
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}

package dicomfile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muurk/dcmview/internal/tagtree"
)

// DefaultPreviewLength is the number of runes kept in a value preview.
const DefaultPreviewLength = 256

// multiValueSeparator joins the values of a multi-valued element.
const multiValueSeparator = `\`

// numericStringVRs hold numbers encoded as text.
var numericStringVRs = map[string]bool{
	"IS": true,
	"DS": true,
}

func textKind(vr string) tagtree.ValueKind {
	if numericStringVRs[vr] {
		return tagtree.KindNumeric
	}
	return tagtree.KindText
}

func previewStrings(vals []string, limit int) string {
	trimmed := make([]string, len(vals))
	for i, v := range vals {
		trimmed[i] = strings.TrimRight(v, " \x00")
	}
	return truncate(strings.Join(trimmed, multiValueSeparator), limit)
}

func previewInts(vals []int, limit int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return truncate(strings.Join(parts, multiValueSeparator), limit)
}

func previewFloats(vals []float64, limit int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return truncate(strings.Join(parts, multiValueSeparator), limit)
}

func previewBytes(n int) string {
	return fmt.Sprintf("<%d bytes>", n)
}

const pixelDataPreview = "<Pixel Data>"

// truncate keeps the first limit runes of s and marks the cut with "...".
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

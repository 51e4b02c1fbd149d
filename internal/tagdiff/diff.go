// Package tagdiff compares the root elements of two decoded files.
//
// Each root element of either file is classified as added, deleted, changed
// or unchanged. A root and everything nested under it move as one block, so
// the merged stream is still a valid pre-order input for tagtree.Build.
package tagdiff

import (
	"fmt"
	"sort"

	"github.com/muurk/dcmview/internal/tagtree"
)

// Stats counts root elements per status.
type Stats struct {
	Added     int
	Deleted   int
	Changed   int
	Unchanged int
}

// Differences is the number of roots that are not unchanged.
func (s Stats) Differences() int {
	return s.Added + s.Deleted + s.Changed
}

func (s Stats) String() string {
	return fmt.Sprintf("+%d -%d ~%d", s.Added, s.Deleted, s.Changed)
}

type block []tagtree.Element

func (b block) tag() tagtree.Tag { return b[0].Tag }

func (b block) equal(o block) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if !b[i].SameContent(o[i]) {
			return false
		}
	}
	return true
}

// baseline is what the base file showed for this root.
func (b block) baseline() string {
	root := b[0]
	if root.Kind != tagtree.KindSequence {
		return root.Summary
	}
	items := 0
	for _, el := range b[1:] {
		if el.Depth == 1 {
			items++
		}
	}
	return fmt.Sprintf("<%d item(s)>", items)
}

func split(elements []tagtree.Element) []block {
	var out []block
	start := -1
	for i, el := range elements {
		if el.Depth == 0 {
			if start >= 0 {
				out = append(out, block(elements[start:i]))
			}
			start = i
		}
	}
	if start >= 0 {
		out = append(out, block(elements[start:]))
	}
	return out
}

// Compare merges base and modified into one element stream ordered by root
// tag. Root elements carry a DiffStatus; changed roots also carry the base
// summary in Baseline. Deleted roots keep their base subtree.
func Compare(base, modified []tagtree.Element) ([]tagtree.Element, Stats) {
	baseBlocks := split(base)
	byTag := make(map[tagtree.Tag]block, len(baseBlocks))
	for _, b := range baseBlocks {
		byTag[b.tag()] = b
	}

	var stats Stats
	var merged []block
	seen := make(map[tagtree.Tag]bool, len(baseBlocks))
	for _, b := range split(modified) {
		out := make(block, len(b))
		copy(out, b)
		prev, ok := byTag[b.tag()]
		seen[b.tag()] = true
		switch {
		case !ok:
			out[0].Status = tagtree.DiffAdded
			stats.Added++
		case prev.equal(b):
			out[0].Status = tagtree.DiffUnchanged
			stats.Unchanged++
		default:
			out[0].Status = tagtree.DiffChanged
			out[0].Baseline = prev.baseline()
			stats.Changed++
		}
		merged = append(merged, out)
	}
	for _, b := range baseBlocks {
		if seen[b.tag()] {
			continue
		}
		out := make(block, len(b))
		copy(out, b)
		out[0].Status = tagtree.DiffDeleted
		stats.Deleted++
		merged = append(merged, out)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].tag().Less(merged[j].tag())
	})

	var result []tagtree.Element
	for _, b := range merged {
		result = append(result, b...)
	}
	return result, stats
}

package tagtree

import (
	"fmt"
	"strings"
)

// Tag identifies a DICOM attribute by its group and element numbers.
type Tag struct {
	Group   uint16
	Element uint16
}

// ItemTag is the tag carried by sequence items.
var ItemTag = Tag{Group: 0xFFFE, Element: 0xE000}

// String renders the tag as (GGGG,EEEE) with uppercase hex digits.
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// IsPrivate reports whether the tag belongs to an odd (private) group.
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// Less orders tags by group, then element.
func (t Tag) Less(o Tag) bool {
	if t.Group != o.Group {
		return t.Group < o.Group
	}
	return t.Element < o.Element
}

// ValueKind classifies the value held by an element.
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindText
	KindNumeric
	KindBinary
	KindPixelData
	KindSequence
	KindItem
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindBinary:
		return "binary"
	case KindPixelData:
		return "pixel-data"
	case KindSequence:
		return "sequence"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// DiffStatus marks how a root element compares against a baseline file.
// DiffNone is used outside of diff mode.
type DiffStatus int

const (
	DiffNone DiffStatus = iota
	DiffUnchanged
	DiffAdded
	DiffDeleted
	DiffChanged
)

func (s DiffStatus) String() string {
	switch s {
	case DiffUnchanged:
		return "unchanged"
	case DiffAdded:
		return "added"
	case DiffDeleted:
		return "deleted"
	case DiffChanged:
		return "changed"
	default:
		return "none"
	}
}

// Marker returns the single-character diff column marker.
func (s DiffStatus) Marker() string {
	switch s {
	case DiffAdded:
		return "+"
	case DiffDeleted:
		return "-"
	case DiffChanged:
		return "M"
	default:
		return " "
	}
}

// Element is one decoded DICOM element in pre-order, as produced by a
// decoder. Depth is 0 for dataset roots and increases by one per level of
// sequence or item nesting.
type Element struct {
	Depth   int
	Tag     Tag
	Keyword string
	VR      string
	Kind    ValueKind
	Summary string

	// Item is the 1-based index of a sequence item. Zero otherwise.
	Item int

	Status   DiffStatus
	Baseline string
}

// TagLabel is the text shown in the tag column.
func (e Element) TagLabel() string {
	if e.Kind == KindItem {
		return fmt.Sprintf("Item #%d", e.Item)
	}
	return e.Tag.String()
}

// SearchText is the lowercase text matched by incremental search.
func (e Element) SearchText() string {
	return strings.ToLower(e.TagLabel() + " " + e.Keyword + " " + e.Summary)
}

// SameContent reports whether two elements carry the same tag, VR and value.
func (e Element) SameContent(o Element) bool {
	return e.Depth == o.Depth && e.Tag == o.Tag && e.VR == o.VR &&
		e.Kind == o.Kind && e.Summary == o.Summary
}

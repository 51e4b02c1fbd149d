// Package validation checks CT and MR image files for missing Type 1
// attributes.
//
// Type 1 attributes must be present with a non-empty value. Only the
// modules that every CT or MR image carries are checked; conditional (1C)
// attributes are skipped. Files of any other SOP class are reported as not
// applicable.
package validation

import (
	"fmt"
	"strings"

	"github.com/muurk/dcmview/internal/tagtree"
)

// SOP class UIDs handled by Validate.
const (
	CTImageStorage = "1.2.840.10008.5.1.4.1.1.2"
	MRImageStorage = "1.2.840.10008.5.1.4.1.1.4"
)

var sopClassUID = tagtree.Tag{Group: 0x0008, Element: 0x0016}

// SOPClass is the interpreted SOP Class UID of a file.
type SOPClass int

const (
	SOPClassUnknown SOPClass = iota
	SOPClassCT
	SOPClassMR
	SOPClassOther
)

func (c SOPClass) String() string {
	switch c {
	case SOPClassCT:
		return "CT Image Storage"
	case SOPClassMR:
		return "MR Image Storage"
	case SOPClassOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Status is the outcome of a validation run.
type Status int

const (
	StatusNotApplicable Status = iota
	StatusValid
	StatusInvalid
)

// Result reports which required attributes are missing.
type Result struct {
	Status  Status
	Class   SOPClass
	UID     string
	Missing []string // keywords, in module order
}

// Summary is a one-line description for the status bar.
func (r Result) Summary() string {
	switch r.Status {
	case StatusValid:
		return fmt.Sprintf("%s: all Type 1 attributes present", r.Class)
	case StatusInvalid:
		return fmt.Sprintf("%s: missing Type 1 %s", r.Class, strings.Join(r.Missing, ", "))
	default:
		return "Type 1 check not applicable"
	}
}

type requirement struct {
	tag     tagtree.Tag
	keyword string
}

// module is a named group of Type 1 attributes.
type module struct {
	name string
	tags []requirement
}

var commonModules = []module{
	{"SOP Common", []requirement{
		{tagtree.Tag{Group: 0x0008, Element: 0x0016}, "SOPClassUID"},
		{tagtree.Tag{Group: 0x0008, Element: 0x0018}, "SOPInstanceUID"},
	}},
	{"General Study", []requirement{
		{tagtree.Tag{Group: 0x0020, Element: 0x000D}, "StudyInstanceUID"},
	}},
	{"General Series", []requirement{
		{tagtree.Tag{Group: 0x0008, Element: 0x0060}, "Modality"},
		{tagtree.Tag{Group: 0x0020, Element: 0x000E}, "SeriesInstanceUID"},
	}},
	{"Frame of Reference", []requirement{
		{tagtree.Tag{Group: 0x0020, Element: 0x0052}, "FrameOfReferenceUID"},
	}},
	{"Image Plane", []requirement{
		{tagtree.Tag{Group: 0x0020, Element: 0x0032}, "ImagePositionPatient"},
		{tagtree.Tag{Group: 0x0020, Element: 0x0037}, "ImageOrientationPatient"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0030}, "PixelSpacing"},
	}},
	{"Image Pixel", []requirement{
		{tagtree.Tag{Group: 0x0028, Element: 0x0002}, "SamplesPerPixel"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0004}, "PhotometricInterpretation"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0010}, "Rows"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0011}, "Columns"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0100}, "BitsAllocated"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0101}, "BitsStored"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0102}, "HighBit"},
		{tagtree.Tag{Group: 0x0028, Element: 0x0103}, "PixelRepresentation"},
		{tagtree.Tag{Group: 0x7FE0, Element: 0x0010}, "PixelData"},
	}},
}

// KVP is Type 2 and not listed.
var ctImage = module{"CT Image", []requirement{
	{tagtree.Tag{Group: 0x0008, Element: 0x0008}, "ImageType"},
	{tagtree.Tag{Group: 0x0028, Element: 0x1052}, "RescaleIntercept"},
	{tagtree.Tag{Group: 0x0028, Element: 0x1053}, "RescaleSlope"},
}}

// RepetitionTime and EchoTime are 1C.
var mrImage = module{"MR Image", []requirement{
	{tagtree.Tag{Group: 0x0008, Element: 0x0008}, "ImageType"},
	{tagtree.Tag{Group: 0x0018, Element: 0x0020}, "ScanningSequence"},
	{tagtree.Tag{Group: 0x0018, Element: 0x0021}, "SequenceVariant"},
	{tagtree.Tag{Group: 0x0018, Element: 0x0023}, "MRAcquisitionType"},
}}

// ClassOf interprets a SOP Class UID.
func ClassOf(uid string) SOPClass {
	switch strings.TrimSpace(uid) {
	case "":
		return SOPClassUnknown
	case CTImageStorage:
		return SOPClassCT
	case MRImageStorage:
		return SOPClassMR
	default:
		return SOPClassOther
	}
}

// Validate checks the root elements of a decoded file.
func Validate(elements []tagtree.Element) Result {
	roots := make(map[tagtree.Tag]tagtree.Element)
	for _, el := range elements {
		if el.Depth == 0 {
			roots[el.Tag] = el
		}
	}

	var res Result
	if el, ok := roots[sopClassUID]; ok {
		res.UID = strings.TrimSpace(el.Summary)
	}
	res.Class = ClassOf(res.UID)

	var specific module
	switch res.Class {
	case SOPClassCT:
		specific = ctImage
	case SOPClassMR:
		specific = mrImage
	default:
		res.Status = StatusNotApplicable
		return res
	}

	for _, m := range append(commonModules[:len(commonModules):len(commonModules)], specific) {
		for _, req := range m.tags {
			if !present(roots, req.tag) {
				res.Missing = append(res.Missing, req.keyword)
			}
		}
	}

	res.Status = StatusValid
	if len(res.Missing) > 0 {
		res.Status = StatusInvalid
	}
	return res
}

// present reports whether t is a root element with a value. Text and numbers
// must be non-blank; other kinds only need to exist.
func present(roots map[tagtree.Tag]tagtree.Element, t tagtree.Tag) bool {
	el, ok := roots[t]
	if !ok {
		return false
	}
	switch el.Kind {
	case tagtree.KindText, tagtree.KindNumeric, tagtree.KindUnknown:
		return strings.TrimSpace(el.Summary) != ""
	default:
		return true
	}
}

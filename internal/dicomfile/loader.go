package dicomfile

import (
	"context"
	"os"
	"time"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/dcmview/internal/logging"
	"github.com/muurk/dcmview/internal/tagtree"
)

// Options controls how decoded values are summarized.
type Options struct {
	PreviewLength int
}

func (o Options) previewLength() int {
	if o.PreviewLength <= 0 {
		return DefaultPreviewLength
	}
	return o.PreviewLength
}

// Load decodes the file at path into elements in pre-order. Pixel data is
// skipped; only its presence is recorded.
func Load(path string, opts Options) ([]tagtree.Element, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Type: ErrTypeNotAFile, Path: path, Message: "not a regular file"}
	}

	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		logging.Debug("Decode failed", zap.String("path", path), zap.Error(err))
		return nil, classify(path, err)
	}

	out := convert(nil, ds.Elements, 0, opts.previewLength())
	logging.LogFileLoaded(path, len(out), time.Since(start))
	return out, nil
}

// Open decodes path and builds its tag tree.
func Open(path string, opts Options) (*tagtree.Tree, error) {
	elements, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	tree, err := tagtree.Build(elements)
	if err != nil {
		return nil, classify(path, err)
	}
	return tree, nil
}

// LoadAll decodes several files concurrently. Results are in path order.
// The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, opts Options, paths ...string) ([][]tagtree.Element, error) {
	out := make([][]tagtree.Element, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			elements, err := Load(p, opts)
			if err != nil {
				return err
			}
			out[i] = elements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// convert appends elems and their nested items at depth to out.
func convert(out []tagtree.Element, elems []*dicom.Element, depth, limit int) []tagtree.Element {
	for _, el := range elems {
		if el == nil {
			continue
		}
		out = appendElement(out, el, depth, limit)
	}
	return out
}

func appendElement(out []tagtree.Element, el *dicom.Element, depth, limit int) []tagtree.Element {
	e := tagtree.Element{
		Depth:   depth,
		Tag:     tagtree.Tag{Group: el.Tag.Group, Element: el.Tag.Element},
		Keyword: keyword(el.Tag),
		VR:      el.RawValueRepresentation,
	}
	if el.Value == nil {
		return append(out, e)
	}

	switch el.Value.ValueType() {
	case dicom.Strings:
		if vals, ok := el.Value.GetValue().([]string); ok {
			e.Kind = textKind(e.VR)
			e.Summary = previewStrings(vals, limit)
		}
	case dicom.Ints:
		if vals, ok := el.Value.GetValue().([]int); ok {
			e.Kind = tagtree.KindNumeric
			e.Summary = previewInts(vals, limit)
		}
	case dicom.Floats:
		if vals, ok := el.Value.GetValue().([]float64); ok {
			e.Kind = tagtree.KindNumeric
			e.Summary = previewFloats(vals, limit)
		}
	case dicom.Bytes:
		if vals, ok := el.Value.GetValue().([]byte); ok {
			e.Kind = tagtree.KindBinary
			e.Summary = previewBytes(len(vals))
		}
	case dicom.PixelData:
		e.Kind = tagtree.KindPixelData
		e.Summary = pixelDataPreview
	case dicom.Sequences:
		e.Kind = tagtree.KindSequence
		out = append(out, e)
		items, _ := el.Value.GetValue().([]*dicom.SequenceItemValue)
		for i, item := range items {
			out = appendItem(out, item, i+1, depth+1, limit)
		}
		return out
	case dicom.SequenceItem:
		if item, ok := el.Value.(*dicom.SequenceItemValue); ok {
			return appendItem(out, item, 1, depth, limit)
		}
	}
	return append(out, e)
}

func appendItem(out []tagtree.Element, item *dicom.SequenceItemValue, n, depth, limit int) []tagtree.Element {
	out = append(out, tagtree.Element{
		Depth: depth,
		Tag:   tagtree.ItemTag,
		Kind:  tagtree.KindItem,
		Item:  n,
	})
	if item == nil {
		return out
	}
	children, _ := item.GetValue().([]*dicom.Element)
	return convert(out, children, depth+1, limit)
}

// keyword resolves the dictionary name of t, with fixed labels for private
// and unknown tags.
func keyword(t tag.Tag) string {
	if t.Group%2 == 1 {
		if t.Element >= 0x0010 && t.Element <= 0x00FF {
			return "Private Creator"
		}
		return "Private Tag"
	}
	if info, err := tag.Find(t); err == nil && info.Name != "" {
		return info.Name
	}
	return "Unknown Tag"
}

// Package dicomfile decodes DICOM Part 10 files into tag tree elements.
//
// Decoding is delegated to github.com/suyashkumar/dicom. This package walks
// the decoded dataset in order, turning every element into a
// tagtree.Element with a depth marker and a bounded preview string. Each
// value kind has one preview rule, decided here and never again at render
// time:
//
//   - text and numbers: values joined with a backslash
//   - binary: "<N bytes>"
//   - pixel data: "<Pixel Data>" (frames are skipped while decoding)
//   - sequences and items: no summary; their children carry the content
//
// Previews are cut at 256 runes by default and marked with "...".
//
// # Errors
//
// Failures are returned as *LoadError with an ErrorType, so the command line
// can print a matching troubleshooting box before the browser starts.
package dicomfile

package jfold

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/mattn/go-isatty"
)

// Options controls rendering. The zero value folds everything onto one line
// with no colour; nil options fall back to DefaultOptions.
type Options struct {
	// Depth is the number of nesting levels rendered one element or key per
	// line. Containers deeper than Depth render inline. 0 means no pretty
	// levels at all; negative values behave like 0.
	Depth int
	// Palette selects a colour palette by name (see PaletteNames). Empty
	// selects the default; "none" disables colouring.
	Palette string
	// ForceColor applies the palette even when the destination is not a
	// terminal. Buffer-returning calls colour their output only when
	// ForceColor is set.
	ForceColor bool
}

// DefaultOptions holds the fallback rendering configuration.
var DefaultOptions = &Options{Depth: 2, Palette: "default"}

// ColorPalette holds the raw SGR sequence emitted before each token class.
// Empty strings leave that class unstyled.
type ColorPalette struct {
	Key         string
	String      string
	Number      string
	True        string
	False       string
	Null        string
	Brackets    string
	Punctuation string
}

// Fold re-renders one or more whitespace-separated JSON documents with
// depth-bounded pretty printing, one trailing newline per document. Input
// content is preserved exactly up to whitespace; only the layout depends on
// Options.Depth.
func Fold(in []byte, opts *Options) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(in) + len(in)/2)
	if err := FoldTo(&buf, in, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FoldTo is Fold streaming to a writer. Colour is applied when the writer
// is a terminal or opts.ForceColor is set. The first write error aborts and
// is returned unchanged.
func FoldTo(w io.Writer, in []byte, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions
	}
	pal, err := resolvePalette(opts, shouldColor(w, opts))
	if err != nil {
		return err
	}
	e := acquireEncodeState()
	defer releaseEncodeState(e)
	e.src.Reset(in)
	e.reset(w, opts.Depth, pal)
	dec := json.NewDecoder(&e.src)
	dec.UseNumber()
	return e.encodeStream(dec)
}

// Marshal encodes v like encoding/json Marshal and re-renders the result
// with depth-bounded pretty printing. The output carries no trailing
// newline.
func Marshal(v any, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	src, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	pal, err := resolvePalette(opts, opts.ForceColor)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(src) + len(src)/2)
	e := acquireEncodeState()
	defer releaseEncodeState(e)
	e.src.Reset(src)
	e.reset(&buf, opts.Depth, pal)
	dec := json.NewDecoder(&e.src)
	dec.UseNumber()
	if err := e.encodeSingle(dec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// An Encoder folds Go values to a stream, one document per line.
type Encoder struct {
	w    io.Writer
	opts Options
}

// NewEncoder returns an Encoder writing to w. A nil opts uses
// DefaultOptions; the options are copied and later changes to opts do not
// affect the Encoder.
func NewEncoder(w io.Writer, opts *Options) *Encoder {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Encoder{w: w, opts: *opts}
}

// Encode renders v followed by a newline.
func (enc *Encoder) Encode(v any) error {
	src, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return FoldTo(enc.w, src, &enc.opts)
}

// shouldColor reports whether output to w gets the palette applied: never
// for palette "none", always under ForceColor, and otherwise only when w
// exposes a file descriptor attached to a terminal.
func shouldColor(w io.Writer, opts *Options) bool {
	if opts != nil {
		if strings.EqualFold(strings.TrimSpace(opts.Palette), paletteNoneName) {
			return false
		}
		if opts.ForceColor {
			return true
		}
	}
	fw, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(fw.Fd()) || isatty.IsCygwinTerminal(fw.Fd())
}

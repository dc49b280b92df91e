package jfold

import (
	"errors"
	"io"

	"pkt.systems/jfold/internal/ansi"
)

// ErrUnbalanced is returned by EndArray and EndObject in strict mode when
// there is no matching open container.
var ErrUnbalanced = errors.New("jfold: unmatched container close")

// indentUnit is the fixed per-level indent. Layout depends only on nesting
// depth, so the unit is not configurable.
const indentUnit = "  "

// level is the per-container bookkeeping. pretty is fixed when the level is
// pushed and never re-evaluated; hasValue flips on the first element or key
// and gates the newline before the closing bracket, so empty containers
// render as [] and {} at every depth.
type level struct {
	pretty   bool
	hasValue bool
}

// Formatter translates structural events into a byte stream that is pretty
// printed for the first maxDepth levels of nesting and rendered inline with
// ", " separators below that. Only the layout changes with depth, never the
// content.
//
// A tree-walking caller drives the Formatter through matched
// BeginArray/EndArray and BeginObject/EndObject pairs, announcing each
// element with BeginArrayValue and each entry with BeginObjectKey followed
// by BeginObjectValue. Scalar bytes are written by the caller to the same
// writer between events; the Formatter never buffers, so the interleaving
// is safe.
//
// One Formatter renders one tree. Instances share no state, but a single
// instance must not be driven from more than one goroutine.
type Formatter struct {
	w        io.Writer
	bw       io.ByteWriter
	sw       io.StringWriter
	pal      ColorPalette
	maxDepth int
	strict   bool
	levels   []level
	levelBuf [16]level
	byteBuf  [1]byte
}

// NewFormatter returns a Formatter writing to w. Levels 1..maxDepth are
// pretty printed; deeper levels render inline. A negative maxDepth is
// treated as 0 (everything inline).
func NewFormatter(w io.Writer, maxDepth int) *Formatter {
	f := &Formatter{}
	f.reset(w, maxDepth)
	return f
}

// SetPalette colours structural tokens with pal. The zero ColorPalette
// leaves output unstyled. Styling never changes the layout bytes.
func (f *Formatter) SetPalette(pal ColorPalette) {
	f.pal = pal
}

// SetStrict makes EndArray and EndObject fail with ErrUnbalanced when no
// container is open instead of rendering a bare bracket.
func (f *Formatter) SetStrict(strict bool) {
	f.strict = strict
}

func (f *Formatter) reset(w io.Writer, maxDepth int) {
	f.w = w
	if maxDepth < 0 {
		maxDepth = 0
	}
	f.maxDepth = maxDepth
	f.pal = ColorPalette{}
	f.strict = false
	f.levels = f.levelBuf[:0]
	if w == nil {
		f.bw = nil
		f.sw = nil
		return
	}
	if bw, ok := w.(io.ByteWriter); ok {
		f.bw = bw
	} else {
		f.bw = nil
	}
	if sw, ok := w.(io.StringWriter); ok {
		f.sw = sw
	} else {
		f.sw = nil
	}
}

func (f *Formatter) clear() {
	f.w = nil
	f.bw = nil
	f.sw = nil
	f.pal = ColorPalette{}
	f.maxDepth = 0
	f.strict = false
	f.levels = f.levelBuf[:0]
}

// BeginArray opens an array level and emits "[".
func (f *Formatter) BeginArray() error {
	f.push()
	return f.writeStyledByte(f.pal.Brackets, '[')
}

// EndArray closes the innermost level and emits "]". When the level was
// pretty and held at least one element, the bracket moves to its own line
// at the enclosing indent.
func (f *Formatter) EndArray() error {
	return f.endContainer(']')
}

// BeginArrayValue is called before each array element with first reporting
// whether this is the element at index zero. In a pretty level every
// element starts an indented line; in an inline level elements are joined
// with ", ".
func (f *Formatter) BeginArrayValue(first bool) error {
	return f.beginValue(first)
}

// BeginObject opens an object level and emits "{".
func (f *Formatter) BeginObject() error {
	f.push()
	return f.writeStyledByte(f.pal.Brackets, '{')
}

// EndObject closes the innermost level and emits "}". It mirrors EndArray.
func (f *Formatter) EndObject() error {
	return f.endContainer('}')
}

// BeginObjectKey is called before each key with first reporting whether
// this is the entry at index zero. The separator rule is identical to
// BeginArrayValue.
func (f *Formatter) BeginObjectKey(first bool) error {
	return f.beginValue(first)
}

// BeginObjectValue is called between a key and its value. It always emits
// ": " regardless of depth.
func (f *Formatter) BeginObjectValue() error {
	return f.writeStyledString(f.pal.Punctuation, ": ")
}

func (f *Formatter) push() {
	f.levels = append(f.levels, level{pretty: len(f.levels)+1 <= f.maxDepth})
}

// pop removes the innermost level. A close with no open level keeps the
// depth clamped at the root and reports a level that was neither pretty
// nor populated, unless strict mode is on.
func (f *Formatter) pop() (level, error) {
	if n := len(f.levels); n > 0 {
		lv := f.levels[n-1]
		f.levels = f.levels[:n-1]
		return lv, nil
	}
	if f.strict {
		return level{}, ErrUnbalanced
	}
	return level{}, nil
}

func (f *Formatter) endContainer(bracket byte) error {
	lv, err := f.pop()
	if err != nil {
		return err
	}
	if lv.pretty && lv.hasValue {
		if err := f.newline(len(f.levels)); err != nil {
			return err
		}
	}
	return f.writeStyledByte(f.pal.Brackets, bracket)
}

func (f *Formatter) beginValue(first bool) error {
	pretty := false
	if n := len(f.levels); n > 0 {
		f.levels[n-1].hasValue = true
		pretty = f.levels[n-1].pretty
	}
	if pretty {
		if !first {
			if err := f.writeStyledByte(f.pal.Punctuation, ','); err != nil {
				return err
			}
		}
		return f.newline(len(f.levels))
	}
	if first {
		return nil
	}
	return f.writeStyledString(f.pal.Punctuation, ", ")
}

func (f *Formatter) writeANSI(seq string) error {
	if seq == "" {
		return nil
	}
	var err error
	if f.sw != nil {
		_, err = f.sw.WriteString(seq)
	} else {
		_, err = io.WriteString(f.w, seq)
	}
	return err
}

func (f *Formatter) writeBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := f.w.Write(b)
	return err
}

func (f *Formatter) writeString(s string) error {
	if s == "" {
		return nil
	}
	var err error
	if f.sw != nil {
		_, err = f.sw.WriteString(s)
	} else {
		_, err = io.WriteString(f.w, s)
	}
	return err
}

func (f *Formatter) writeByte(b byte) error {
	if f.bw != nil {
		return f.bw.WriteByte(b)
	}
	f.byteBuf[0] = b
	_, err := f.w.Write(f.byteBuf[:])
	return err
}

func (f *Formatter) writeStyledString(style string, s string) error {
	if style != "" {
		if err := f.writeANSI(style); err != nil {
			return err
		}
	}
	if err := f.writeString(s); err != nil {
		return err
	}
	if style != "" {
		if err := f.writeANSI(ansi.Reset); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeStyledBytes(style string, b []byte) error {
	if style != "" {
		if err := f.writeANSI(style); err != nil {
			return err
		}
	}
	if err := f.writeBytes(b); err != nil {
		return err
	}
	if style != "" {
		if err := f.writeANSI(ansi.Reset); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeStyledByte(style string, b byte) error {
	if style != "" {
		if err := f.writeANSI(style); err != nil {
			return err
		}
	}
	if err := f.writeByte(b); err != nil {
		return err
	}
	if style != "" {
		if err := f.writeANSI(ansi.Reset); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeIndent(depth int) error {
	for i := 0; i < depth; i++ {
		if err := f.writeString(indentUnit); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) newline(depth int) error {
	if err := f.writeByte('\n'); err != nil {
		return err
	}
	return f.writeIndent(depth)
}

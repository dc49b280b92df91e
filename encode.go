package jfold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// encFrame tracks the driver's position inside one open container: whether
// it is an object, whether the next token is a key, and how many entries or
// elements have begun. The Formatter keeps its own level stack; this state
// only decides which event to announce for the next token.
type encFrame struct {
	object    bool
	expectKey bool
	n         int
}

type encodeState struct {
	f        Formatter
	frames   []encFrame
	frameBuf [16]encFrame
	scratch  []byte
	src      bytes.Reader
}

func (e *encodeState) reset(w io.Writer, depth int, pal ColorPalette) {
	e.f.reset(w, depth)
	e.f.pal = pal
	e.frames = e.frameBuf[:0]
}

func (e *encodeState) clear() {
	e.f.clear()
	e.frames = e.frameBuf[:0]
	e.src.Reset(nil)
}

// encodeStream renders every document in the token stream, one trailing
// newline per document.
func (e *encodeState) encodeStream(dec *json.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := e.encodeValue(dec, tok); err != nil {
			return err
		}
		if err := e.f.writeByte('\n'); err != nil {
			return err
		}
	}
}

// encodeSingle renders exactly one document with no trailing newline.
func (e *encodeState) encodeSingle(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return e.encodeValue(dec, tok)
}

// encodeValue renders one complete value starting at tok, pulling further
// tokens from dec until the value's outermost container closes. The decoder
// guarantees well-nested delimiters and string keys, so every event reaches
// the Formatter in matched order.
func (e *encodeState) encodeValue(dec *json.Decoder, tok json.Token) error {
	for {
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				if _, err := e.beginValue(); err != nil {
					return err
				}
				if d == '[' {
					if err := e.f.BeginArray(); err != nil {
						return err
					}
					e.frames = append(e.frames, encFrame{})
				} else {
					if err := e.f.BeginObject(); err != nil {
						return err
					}
					e.frames = append(e.frames, encFrame{object: true, expectKey: true})
				}
			case ']':
				e.frames = e.frames[:len(e.frames)-1]
				if err := e.f.EndArray(); err != nil {
					return err
				}
			case '}':
				e.frames = e.frames[:len(e.frames)-1]
				if err := e.f.EndObject(); err != nil {
					return err
				}
			}
		} else {
			isKey, err := e.beginValue()
			if err != nil {
				return err
			}
			if err := e.writeScalar(tok, isKey); err != nil {
				return err
			}
		}
		if len(e.frames) == 0 {
			return nil
		}
		var err error
		tok, err = dec.Token()
		if err != nil {
			return err
		}
	}
}

// beginValue announces the positional event for the token about to be
// written and reports whether that token is an object key.
func (e *encodeState) beginValue() (bool, error) {
	n := len(e.frames)
	if n == 0 {
		return false, nil
	}
	top := &e.frames[n-1]
	if !top.object {
		err := e.f.BeginArrayValue(top.n == 0)
		top.n++
		return false, err
	}
	if top.expectKey {
		err := e.f.BeginObjectKey(top.n == 0)
		top.n++
		top.expectKey = false
		return true, err
	}
	top.expectKey = true
	return false, e.f.BeginObjectValue()
}

func (e *encodeState) writeScalar(tok json.Token, isKey bool) error {
	switch v := tok.(type) {
	case string:
		style := e.f.pal.String
		if isKey {
			style = e.f.pal.Key
		}
		e.scratch = appendQuotedString(e.scratch[:0], v)
		return e.f.writeStyledBytes(style, e.scratch)
	case json.Number:
		return e.f.writeStyledString(e.f.pal.Number, v.String())
	case bool:
		if v {
			return e.f.writeStyledString(e.f.pal.True, "true")
		}
		return e.f.writeStyledString(e.f.pal.False, "false")
	case nil:
		return e.f.writeStyledString(e.f.pal.Null, "null")
	default:
		return fmt.Errorf("json: unexpected token %T", tok)
	}
}

func appendQuotedString(dst []byte, s string) []byte {
	buf := dst
	if buf == nil {
		buf = make([]byte, 0, len(s)+2)
	}
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '"':
			buf = append(buf, '\\', c)
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\f':
			buf = append(buf, '\\', 'f')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		default:
			if c < 0x20 {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit(c>>4), hexDigit(c&0x0f))
				continue
			}
			buf = append(buf, c)
		}
	}
	buf = append(buf, '"')
	return buf
}

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'a' + (v - 10)
}

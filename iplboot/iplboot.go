// Package iplboot implements the "IPLBOOT" framing the base firmware's
// runtime uses to locate the scrambled payload embedded in flash: a
// 12-byte magic-plus-size header followed by the scrambled, aligned body
// and an ASCII "PICO" trailer.
package iplboot

import (
	"encoding/binary"

	"github.com/clktmr/gcbootcraft/scramble"
)

const (
	// HeaderSize is the emitted header length. The size field inside it
	// encodes a notional 32-byte header used by an upstream tool, even
	// though only these 12 bytes are written here.
	HeaderSize = 12

	magic         = "IPLBOOT "
	trailer       = "PICO"
	upstreamExtra = 32
)

// Wrapped is a scrambled, framed payload ready for UF2 encoding.
type Wrapped struct {
	Header []byte
	Body   []byte
}

// Bytes returns the header and body concatenated, as they should appear in
// the UF2 stream.
func (w Wrapped) Bytes() []byte {
	out := make([]byte, 0, len(w.Header)+len(w.Body))
	out = append(out, w.Header...)
	out = append(out, w.Body...)
	return out
}

// Wrap scrambles raw, aligns it to a 4-byte boundary, appends the "PICO"
// trailer, and prepends the "IPLBOOT " header with its big-endian size
// field.
func Wrap(raw []byte) Wrapped {
	scrambled := scramble.Bytes(raw)

	aligned := (len(scrambled) + 3) &^ 3
	body := make([]byte, aligned+len(trailer))
	copy(body, scrambled)
	copy(body[aligned:], trailer)

	header := make([]byte, HeaderSize)
	copy(header, magic)
	binary.BigEndian.PutUint32(header[8:12], uint32(len(body)+upstreamExtra))

	return Wrapped{Header: header, Body: body}
}

// Validate checks that w carries a well-formed IPLBOOT frame.
func Validate(w Wrapped) error {
	if len(w.Header) != HeaderSize {
		return &WrapInvalidHeaderSizeError{Got: len(w.Header)}
	}
	if string(w.Header[0:8]) != magic {
		return &WrapInvalidMagicError{Got: append([]byte(nil), w.Header[0:8]...)}
	}
	if len(w.Body) < len(trailer) || string(w.Body[len(w.Body)-len(trailer):]) != trailer {
		return &WrapMissingPicoTrailerError{Got: append([]byte(nil), lastN(w.Body, len(trailer))...)}
	}

	declared := binary.BigEndian.Uint32(w.Header[8:12])
	observed := uint32(len(w.Body) + upstreamExtra)
	if declared != observed {
		return &WrapSizeMismatchError{Declared: declared, Observed: observed}
	}

	return nil
}

func lastN(b []byte, n int) []byte {
	if len(b) < n {
		return b
	}
	return b[len(b)-n:]
}

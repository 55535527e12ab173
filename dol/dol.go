// Package dol decodes and validates GameCube DOL executables.
//
// A DOL file starts with a 256-byte big-endian header addressing up to 7
// text and 11 data sections, followed by the raw bytes of those sections at
// their declared file offsets. See https://wiki.tockdom.com/wiki/DOL_(File_Format)
// for the on-disk layout this package decodes.
package dol

import (
	"encoding/binary"
	"fmt"
)

const (
	HeaderSize = 256

	numText = 7
	numData = 11

	entryPointWant = 0x81300000

	// MaxFileSize is the largest DOL file this package will parse (I3).
	MaxFileSize = 5 * 1024 * 1024
)

// Header is the decoded 256-byte DOL header, all fields as they appear on
// disk (big-endian, 32-bit).
type Header struct {
	TextOffset [numText]uint32
	DataOffset [numData]uint32
	TextAddr   [numText]uint32
	DataAddr   [numData]uint32
	TextSize   [numText]uint32
	DataSize   [numData]uint32
	BSSAddr    uint32
	BSSSize    uint32
	EntryPoint uint32
}

// Section describes one non-empty section extracted from a DOL file.
type Section struct {
	Label  string
	Offset uint32
	Addr   uint32
	Size   uint32
	Data   []byte
}

// Sections is the result of ExtractSections: one entry per non-empty
// section, in header order, plus their combined size.
type Sections struct {
	Entries   []Section
	TotalSize uint32
}

// ParseHeader decodes the 256-byte header at the start of b.
func ParseHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, &DolTooSmallError{Got: len(b), Min: HeaderSize}
	}

	r := beReader{b}
	for i := range h.TextOffset {
		h.TextOffset[i] = r.u32(0x00 + 4*i)
	}
	for i := range h.DataOffset {
		h.DataOffset[i] = r.u32(0x1C + 4*i)
	}
	for i := range h.TextAddr {
		h.TextAddr[i] = r.u32(0x48 + 4*i)
	}
	for i := range h.DataAddr {
		h.DataAddr[i] = r.u32(0x64 + 4*i)
	}
	for i := range h.TextSize {
		h.TextSize[i] = r.u32(0x90 + 4*i)
	}
	for i := range h.DataSize {
		h.DataSize[i] = r.u32(0xAC + 4*i)
	}
	h.BSSAddr = r.u32(0xD8)
	h.BSSSize = r.u32(0xDC)
	h.EntryPoint = r.u32(0xE0)

	if isZeroHeader(h) {
		return h, &DolZeroHeaderError{}
	}

	return h, nil
}

func isZeroHeader(h Header) bool {
	if h.EntryPoint != 0 {
		return false
	}
	for _, v := range h.TextOffset {
		if v != 0 {
			return false
		}
	}
	for _, v := range h.DataOffset {
		if v != 0 {
			return false
		}
	}
	for _, v := range h.TextAddr {
		if v != 0 {
			return false
		}
	}
	return true
}

type beReader struct{ b []byte }

func (r beReader) u32(off int) uint32 {
	return binary.BigEndian.Uint32(r.b[off : off+4])
}

// Validate checks I1, I2 and I3 in that order against the file bytes b.
func Validate(h Header, b []byte) error {
	if h.EntryPoint != entryPointWant {
		return &DolInvalidEntryPointError{Got: h.EntryPoint, Expected: entryPointWant}
	}
	if h.TextAddr[0] != entryPointWant {
		return &DolInvalidLoadAddressError{Got: h.TextAddr[0], Expected: entryPointWant}
	}

	type region struct {
		label  string
		offset uint32
		size   uint32
	}
	regions := make([]region, 0, numText+numData)
	for i := 0; i < numText; i++ {
		if h.TextSize[i] != 0 {
			regions = append(regions, region{fmt.Sprintf("text%d", i), h.TextOffset[i], h.TextSize[i]})
		}
	}
	for i := 0; i < numData; i++ {
		if h.DataSize[i] != 0 {
			regions = append(regions, region{fmt.Sprintf("data%d", i), h.DataOffset[i], h.DataSize[i]})
		}
	}

	fileSize := uint32(len(b))
	for _, r := range regions {
		if r.offset+r.size < r.offset || r.offset+r.size > fileSize {
			return &DolSectionOutOfBoundsError{
				Section:  r.label,
				Offset:   r.offset,
				Size:     r.size,
				FileSize: fileSize,
			}
		}
	}

	for i := 1; i < len(regions); i++ {
		for j := 0; j < i; j++ {
			a, bb := regions[j], regions[i]
			if a.offset > bb.offset {
				a, bb = bb, a
			}
			if a.offset+a.size > bb.offset {
				return &DolSectionOverlapError{
					ALabel: a.label, ARange: [2]uint32{a.offset, a.offset + a.size},
					BLabel: bb.label, BRange: [2]uint32{bb.offset, bb.offset + bb.size},
				}
			}
		}
	}

	if len(b) > MaxFileSize {
		return &DolTooLargeError{Got: len(b), Max: MaxFileSize}
	}

	return nil
}

// ExtractSections returns, in header order, one Section per non-empty
// section declared in h, with its bytes copied out of b. It is a diagnostic
// and testing aid; the pipeline wraps the entire DOL file rather than the
// flattened section payload this returns (see firmware.Build).
func ExtractSections(h Header, b []byte) Sections {
	var out Sections
	add := func(label string, offset, addr, size uint32) {
		if size == 0 {
			return
		}
		data := make([]byte, size)
		copy(data, b[offset:offset+size])
		out.Entries = append(out.Entries, Section{
			Label: label, Offset: offset, Addr: addr, Size: size, Data: data,
		})
		out.TotalSize += size
	}
	for i := 0; i < numText; i++ {
		add(fmt.Sprintf("text%d", i), h.TextOffset[i], h.TextAddr[i], h.TextSize[i])
	}
	for i := 0; i < numData; i++ {
		add(fmt.Sprintf("data%d", i), h.DataOffset[i], h.DataAddr[i], h.DataSize[i])
	}
	return out
}

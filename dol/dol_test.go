package dol_test

import (
	"encoding/binary"
	"testing"

	"github.com/clktmr/gcbootcraft/dol"
)

func putU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// buildHeader returns a minimal, otherwise-zeroed 256-byte header with a
// valid entry point and first text section load address.
func buildHeader() []byte {
	b := make([]byte, dol.HeaderSize)
	putU32(b, 0x48, 0x81300000) // text0 addr
	putU32(b, 0xE0, 0x81300000) // entry point
	return b
}

func TestParseHeaderTooSmall(t *testing.T) {
	_, err := dol.ParseHeader(make([]byte, 100))
	if _, ok := err.(*dol.DolTooSmallError); !ok {
		t.Fatalf("expected DolTooSmallError, got %v (%T)", err, err)
	}
}

func TestParseHeaderZero(t *testing.T) {
	_, err := dol.ParseHeader(make([]byte, dol.HeaderSize))
	if _, ok := err.(*dol.DolZeroHeaderError); !ok {
		t.Fatalf("expected DolZeroHeaderError, got %v (%T)", err, err)
	}
}

func TestParseHeaderExactSizeAllSectionsEmptyValid(t *testing.T) {
	b := buildHeader()
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := dol.Validate(h, b); err != nil {
		t.Fatalf("expected valid header with zero sections, got %v", err)
	}
}

func TestParseHeaderExactSizeAllSectionsEmptyBadLoadAddress(t *testing.T) {
	// Boundary behavior from spec.md §8: a 256-byte DOL with a valid
	// entry point but no text0 load address parses fine but fails
	// validation on the text0 load address check.
	b := make([]byte, dol.HeaderSize)
	putU32(b, 0xE0, 0x81300000) // entry point only
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = dol.Validate(h, b)
	if _, ok := err.(*dol.DolInvalidLoadAddressError); !ok {
		t.Fatalf("expected DolInvalidLoadAddressError, got %v (%T)", err, err)
	}
}

func TestValidateInvalidEntryPoint(t *testing.T) {
	b := buildHeader()
	putU32(b, 0xE0, 0x80000000)
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = dol.Validate(h, b)
	if _, ok := err.(*dol.DolInvalidEntryPointError); !ok {
		t.Fatalf("expected DolInvalidEntryPointError, got %v (%T)", err, err)
	}
}

func TestValidateInvalidLoadAddress(t *testing.T) {
	b := buildHeader()
	putU32(b, 0x48, 0x80000000)
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = dol.Validate(h, b)
	if _, ok := err.(*dol.DolInvalidLoadAddressError); !ok {
		t.Fatalf("expected DolInvalidLoadAddressError, got %v (%T)", err, err)
	}
}

func TestValidateSectionOutOfBounds(t *testing.T) {
	b := buildHeader()
	putU32(b, 0x00, dol.HeaderSize) // text0 offset
	putU32(b, 0x90, 0x1000)         // text0 size, past end of file
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = dol.Validate(h, b)
	if _, ok := err.(*dol.DolSectionOutOfBoundsError); !ok {
		t.Fatalf("expected DolSectionOutOfBoundsError, got %v (%T)", err, err)
	}
}

func TestValidateSectionOverlap(t *testing.T) {
	total := dol.HeaderSize + 0x100
	b := make([]byte, total)
	copy(b, buildHeader())
	putU32(b, 0x00, uint32(dol.HeaderSize))      // text0 offset
	putU32(b, 0x90, 0x80)                        // text0 size
	putU32(b, 0x1C, uint32(dol.HeaderSize)+0x40) // data0 offset overlaps text0
	putU32(b, 0x64, 0x81400000)                  // data0 addr, arbitrary
	putU32(b, 0xAC, 0x80)                        // data0 size
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = dol.Validate(h, b)
	if _, ok := err.(*dol.DolSectionOverlapError); !ok {
		t.Fatalf("expected DolSectionOverlapError, got %v (%T)", err, err)
	}
}

func TestValidateTooLarge(t *testing.T) {
	b := make([]byte, dol.MaxFileSize+dol.HeaderSize)
	copy(b, buildHeader())
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	err = dol.Validate(h, b)
	if _, ok := err.(*dol.DolTooLargeError); !ok {
		t.Fatalf("expected DolTooLargeError, got %v (%T)", err, err)
	}
}

func TestExtractSectionsSkipsEmpty(t *testing.T) {
	total := dol.HeaderSize + 0x40
	b := make([]byte, total)
	copy(b, buildHeader())
	putU32(b, 0x00, uint32(dol.HeaderSize)) // text0 offset
	putU32(b, 0x90, 0x40)                   // text0 size
	h, err := dol.ParseHeader(b)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	sections := dol.ExtractSections(h, b)
	if len(sections.Entries) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections.Entries))
	}
	if sections.Entries[0].Label != "text0" {
		t.Fatalf("expected text0, got %s", sections.Entries[0].Label)
	}
	if sections.TotalSize != 0x40 {
		t.Fatalf("expected total size 0x40, got %#x", sections.TotalSize)
	}
}

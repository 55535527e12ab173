package dol

import "fmt"

// DolTooSmallError reports an input shorter than the fixed 256-byte header.
type DolTooSmallError struct {
	Got int
	Min int
}

func (e *DolTooSmallError) Error() string {
	return fmt.Sprintf("dol: file too small: got %d bytes, need at least %d", e.Got, e.Min)
}

// DolZeroHeaderError reports a header whose entry point and offset/address
// arrays are all zero, most likely a truncated or non-DOL file.
type DolZeroHeaderError struct{}

func (e *DolZeroHeaderError) Error() string {
	return "dol: header is all zero"
}

// DolInvalidEntryPointError reports I1's entry-point half.
type DolInvalidEntryPointError struct {
	Got      uint32
	Expected uint32
}

func (e *DolInvalidEntryPointError) Error() string {
	return fmt.Sprintf("dol: invalid entry point: got %#08x, expected %#08x", e.Got, e.Expected)
}

// DolInvalidLoadAddressError reports I1's first-text-section-address half.
type DolInvalidLoadAddressError struct {
	Got      uint32
	Expected uint32
}

func (e *DolInvalidLoadAddressError) Error() string {
	return fmt.Sprintf("dol: invalid text0 load address: got %#08x, expected %#08x", e.Got, e.Expected)
}

// DolSectionOutOfBoundsError reports an I2 violation: a section's file
// range extends past the end of the file.
type DolSectionOutOfBoundsError struct {
	Section  string
	Offset   uint32
	Size     uint32
	FileSize uint32
}

func (e *DolSectionOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"dol: section %s out of bounds: offset %#x size %#x exceeds file size %#x",
		e.Section, e.Offset, e.Size, e.FileSize,
	)
}

// DolSectionOverlapError reports an I2 violation: two sections occupy
// overlapping file ranges.
type DolSectionOverlapError struct {
	ALabel string
	ARange [2]uint32
	BLabel string
	BRange [2]uint32
}

func (e *DolSectionOverlapError) Error() string {
	return fmt.Sprintf(
		"dol: section %s [%#x,%#x) overlaps section %s [%#x,%#x)",
		e.ALabel, e.ARange[0], e.ARange[1], e.BLabel, e.BRange[0], e.BRange[1],
	)
}

// DolTooLargeError reports an I3 violation.
type DolTooLargeError struct {
	Got int
	Max int
}

func (e *DolTooLargeError) Error() string {
	return fmt.Sprintf("dol: file too large: got %d bytes, max %d", e.Got, e.Max)
}

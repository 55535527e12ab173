package uf2

import "fmt"

// Uf2BadLengthError reports a stream whose byte length isn't a multiple of
// BlockSize.
type Uf2BadLengthError struct {
	Got int
}

func (e *Uf2BadLengthError) Error() string {
	return fmt.Sprintf("uf2: bad stream length: got %d bytes, not a multiple of %d", e.Got, BlockSize)
}

// Uf2BadMagicError reports a block whose magics don't match, at the given
// block index within the stream being parsed. BlockIndex is -1 when the
// error is reported for a single standalone block.
type Uf2BadMagicError struct {
	BlockIndex int
}

func (e *Uf2BadMagicError) Error() string {
	if e.BlockIndex < 0 {
		return "uf2: bad block magic"
	}
	return fmt.Sprintf("uf2: bad block magic at index %d", e.BlockIndex)
}

// Uf2BadBlockSizeError reports a block whose length or payload size is
// invalid.
type Uf2BadBlockSizeError struct {
	Got int
}

func (e *Uf2BadBlockSizeError) Error() string {
	return fmt.Sprintf("uf2: bad block size: got %d", e.Got)
}

// MergeMemoryOverlapError reports base and payload memory ranges that
// intersect.
type MergeMemoryOverlapError struct {
	BaseRange    [2]uint32
	PayloadRange [2]uint32
}

func (e *MergeMemoryOverlapError) Error() string {
	return fmt.Sprintf(
		"uf2: merge: base range [%#x,%#x) overlaps payload range [%#x,%#x)",
		e.BaseRange[0], e.BaseRange[1], e.PayloadRange[0], e.PayloadRange[1],
	)
}

// MergeBaseOutsideFlashError reports a base stream whose lowest target
// address is below FlashBase.
type MergeBaseOutsideFlashError struct {
	BaseStart uint32
}

func (e *MergeBaseOutsideFlashError) Error() string {
	return fmt.Sprintf("uf2: merge: base starts at %#x, below flash base %#x", e.BaseStart, FlashBase)
}

// MergePayloadBeforeBaseEndError reports a payload stream that starts
// before the base stream ends.
type MergePayloadBeforeBaseEndError struct {
	PayloadStart uint32
	BaseEnd      uint32
}

func (e *MergePayloadBeforeBaseEndError) Error() string {
	return fmt.Sprintf(
		"uf2: merge: payload starts at %#x, before base ends at %#x",
		e.PayloadStart, e.BaseEnd,
	)
}

// Package uf2 encodes and merges Universal Flash Format streams: the
// 512-byte little-endian block container flashing tools use to write a
// microcontroller's mass-storage bootloader.
package uf2

import "encoding/binary"

const (
	BlockSize = 512

	magic0   uint32 = 0x0A324655
	magic1   uint32 = 0x9E5D5157
	magicEnd uint32 = 0x0AB16F30

	// FlagFamilyIDPresent is the flags value the base firmware's
	// bootloader expects on every block; it matches existing tooling
	// even though it collides with the UF2 spec's "family ID present"
	// bit assignment.
	FlagFamilyIDPresent uint32 = 0x00002000

	maxPayload = 256
	dataRegion = 476
)

// Family identifies a target microcontroller family by its UF2 tag.
type Family uint32

const (
	RP2040 Family = 0xE48BFF56
	RP2350 Family = 0xE48BFF59
)

// Block is one 512-byte UF2 block, decoded into its meaningful fields. Data
// holds exactly PayloadSize meaningful bytes; the remainder of the 476-byte
// data region is implicitly zero and re-created on serialization.
type Block struct {
	Flags       uint32
	TargetAddr  uint32
	PayloadSize uint32
	BlockNo     uint32
	TotalBlocks uint32
	Family      uint32
	Data        [maxPayload]byte
}

// Encode writes the block's on-disk 512-byte representation into dst.
func (b Block) Encode(dst []byte) {
	_ = dst[BlockSize-1]
	binary.LittleEndian.PutUint32(dst[0:4], magic0)
	binary.LittleEndian.PutUint32(dst[4:8], magic1)
	binary.LittleEndian.PutUint32(dst[8:12], b.Flags)
	binary.LittleEndian.PutUint32(dst[12:16], b.TargetAddr)
	binary.LittleEndian.PutUint32(dst[16:20], b.PayloadSize)
	binary.LittleEndian.PutUint32(dst[20:24], b.BlockNo)
	binary.LittleEndian.PutUint32(dst[24:28], b.TotalBlocks)
	binary.LittleEndian.PutUint32(dst[28:32], b.Family)
	clear(dst[32 : 32+dataRegion])
	copy(dst[32:32+b.PayloadSize], b.Data[:b.PayloadSize])
	binary.LittleEndian.PutUint32(dst[508:512], magicEnd)
}

// DecodeBlock parses one 512-byte UF2 block from src.
func DecodeBlock(src []byte) (Block, error) {
	if len(src) != BlockSize {
		return Block{}, &Uf2BadBlockSizeError{Got: len(src)}
	}
	m0 := binary.LittleEndian.Uint32(src[0:4])
	m1 := binary.LittleEndian.Uint32(src[4:8])
	mEnd := binary.LittleEndian.Uint32(src[508:512])
	if m0 != magic0 || m1 != magic1 || mEnd != magicEnd {
		return Block{}, &Uf2BadMagicError{BlockIndex: -1}
	}

	var b Block
	b.Flags = binary.LittleEndian.Uint32(src[8:12])
	b.TargetAddr = binary.LittleEndian.Uint32(src[12:16])
	b.PayloadSize = binary.LittleEndian.Uint32(src[16:20])
	b.BlockNo = binary.LittleEndian.Uint32(src[20:24])
	b.TotalBlocks = binary.LittleEndian.Uint32(src[24:28])
	b.Family = binary.LittleEndian.Uint32(src[28:32])
	if b.PayloadSize > maxPayload {
		return Block{}, &Uf2BadBlockSizeError{Got: int(b.PayloadSize)}
	}
	copy(b.Data[:b.PayloadSize], src[32:32+b.PayloadSize])

	return b, nil
}

// ValidateBlock re-checks the three magics of a raw 512-byte block.
func ValidateBlock(src []byte) error {
	_, err := DecodeBlock(src)
	return err
}

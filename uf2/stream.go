package uf2

// Stream is an ordered sequence of UF2 blocks.
type Stream struct {
	Blocks []Block
}

// Encode partitions data into consecutive chunks of up to 256 bytes and
// returns one block per chunk, targeting consecutive addresses starting at
// baseAddr and tagged with family.
func Encode(data []byte, baseAddr uint32, family Family) Stream {
	n := (len(data) + maxPayload - 1) / maxPayload
	blocks := make([]Block, n)
	for i := 0; i < n; i++ {
		start := i * maxPayload
		end := min(start+maxPayload, len(data))
		chunk := data[start:end]

		var b Block
		b.Flags = FlagFamilyIDPresent
		b.TargetAddr = baseAddr + uint32(i*maxPayload)
		b.PayloadSize = uint32(len(chunk))
		b.BlockNo = uint32(i)
		b.TotalBlocks = uint32(n)
		b.Family = uint32(family)
		copy(b.Data[:], chunk)
		blocks[i] = b
	}
	return Stream{Blocks: blocks}
}

// Bytes serializes the stream into its on-disk 512-byte-per-block form.
func (s Stream) Bytes() []byte {
	out := make([]byte, len(s.Blocks)*BlockSize)
	for i, b := range s.Blocks {
		b.Encode(out[i*BlockSize : (i+1)*BlockSize])
	}
	return out
}

// ParseStream decodes a raw UF2 byte stream into its blocks.
func ParseStream(b []byte) (Stream, error) {
	if len(b)%BlockSize != 0 {
		return Stream{}, &Uf2BadLengthError{Got: len(b)}
	}
	n := len(b) / BlockSize
	blocks := make([]Block, n)
	for i := 0; i < n; i++ {
		blk, err := DecodeBlock(b[i*BlockSize : (i+1)*BlockSize])
		if err != nil {
			if _, ok := err.(*Uf2BadMagicError); ok {
				return Stream{}, &Uf2BadMagicError{BlockIndex: i}
			}
			return Stream{}, err
		}
		blocks[i] = blk
	}
	return Stream{Blocks: blocks}, nil
}

// ValidateStream checks that b's length is a multiple of BlockSize and that
// every block validates.
func ValidateStream(b []byte) error {
	_, err := ParseStream(b)
	return err
}

// Retag overwrites the family tag of every block in-place. It is the only
// supported way to produce blocks for a family whose encoder path only
// knows how to write the default tag.
func (s Stream) Retag(family Family) {
	for i := range s.Blocks {
		s.Blocks[i].Family = uint32(family)
	}
}

// memRange returns [start, end) spanned by a block list's target addresses,
// and false if the list is empty.
func memRange(blocks []Block) (start, end uint32, ok bool) {
	if len(blocks) == 0 {
		return 0, 0, false
	}
	start = blocks[0].TargetAddr
	end = blocks[0].TargetAddr + blocks[0].PayloadSize
	for _, b := range blocks[1:] {
		if b.TargetAddr < start {
			start = b.TargetAddr
		}
		if e := b.TargetAddr + b.PayloadSize; e > end {
			end = e
		}
	}
	return start, end, true
}

// Merge concatenates base then payload, validates their memory ranges are
// disjoint and correctly ordered relative to flash, and renumbers the
// resulting stream so block indices run 0..N-1 with TotalBlocks == N
// everywhere. All other fields, including family tags, are preserved
// verbatim; Merge never re-tags.
func Merge(base, payload Stream) (Stream, error) {
	baseStart, baseEnd, baseOK := memRange(base.Blocks)
	paylStart, paylEnd, paylOK := memRange(payload.Blocks)

	if baseOK && paylOK {
		if baseStart < paylEnd && paylStart < baseEnd {
			return Stream{}, &MergeMemoryOverlapError{
				BaseRange:    [2]uint32{baseStart, baseEnd},
				PayloadRange: [2]uint32{paylStart, paylEnd},
			}
		}
	}
	if baseOK && baseStart < FlashBase {
		return Stream{}, &MergeBaseOutsideFlashError{BaseStart: baseStart}
	}
	if baseOK && paylOK && paylStart < baseEnd {
		return Stream{}, &MergePayloadBeforeBaseEndError{PayloadStart: paylStart, BaseEnd: baseEnd}
	}

	merged := make([]Block, 0, len(base.Blocks)+len(payload.Blocks))
	merged = append(merged, base.Blocks...)
	merged = append(merged, payload.Blocks...)

	n := uint32(len(merged))
	for i := range merged {
		merged[i].BlockNo = uint32(i)
		merged[i].TotalBlocks = n
	}

	return Stream{Blocks: merged}, nil
}

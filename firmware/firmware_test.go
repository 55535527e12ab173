package firmware_test

import (
	"encoding/binary"
	"testing"

	"github.com/clktmr/gcbootcraft/dol"
	"github.com/clktmr/gcbootcraft/firmware"
	"github.com/clktmr/gcbootcraft/uf2"
)

func minimalDOL(textSize int) []byte {
	b := make([]byte, dol.HeaderSize+textSize)
	binary.BigEndian.PutUint32(b[0x00:0x04], dol.HeaderSize) // text0 offset
	binary.BigEndian.PutUint32(b[0x48:0x4C], 0x81300000)     // text0 addr
	binary.BigEndian.PutUint32(b[0x90:0x94], uint32(textSize))
	binary.BigEndian.PutUint32(b[0xE0:0xE4], 0x81300000) // entry point
	for i := range b[dol.HeaderSize:] {
		b[dol.HeaderSize+i] = byte(i)
	}
	return b
}

func baseUF2() []byte {
	s := uf2.Encode(make([]byte, 512), uf2.FlashBase, uf2.RP2040)
	return s.Bytes()
}

func TestBuildEndToEnd(t *testing.T) {
	out, err := firmware.Build(baseUF2(), minimalDOL(300), uf2.RP2040)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(out)%uf2.BlockSize != 0 {
		t.Fatalf("expected output length a multiple of %d, got %d", uf2.BlockSize, len(out))
	}

	merged, err := uf2.ParseStream(out)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	for i, b := range merged.Blocks {
		if b.BlockNo != uint32(i) {
			t.Fatalf("block%d: BlockNo=%d, want %d", i, b.BlockNo, i)
		}
		if b.TotalBlocks != uint32(len(merged.Blocks)) {
			t.Fatalf("block%d: TotalBlocks=%d, want %d", i, b.TotalBlocks, len(merged.Blocks))
		}
	}
}

// TestP7BasePreserved exercises spec.md P7: base blocks survive bit-for-bit
// except for BlockNo/TotalBlocks.
func TestP7BasePreserved(t *testing.T) {
	base := baseUF2()
	out, err := firmware.Build(base, minimalDOL(10), uf2.RP2040)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	baseStream, _ := uf2.ParseStream(base)
	mergedStream, _ := uf2.ParseStream(out)

	for i, b := range baseStream.Blocks {
		got := mergedStream.Blocks[i]
		got.BlockNo = b.BlockNo
		got.TotalBlocks = b.TotalBlocks
		if got != b {
			t.Fatalf("base block %d not preserved verbatim", i)
		}
	}
}

func TestBuildInvalidDol(t *testing.T) {
	_, err := firmware.Build(baseUF2(), make([]byte, 10), uf2.RP2040)
	ferr, ok := err.(*firmware.Error)
	if !ok {
		t.Fatalf("expected *firmware.Error, got %v (%T)", err, err)
	}
	if ferr.Stage != firmware.StageParse {
		t.Fatalf("expected StageParse, got %s", ferr.Stage)
	}
	if _, ok := ferr.Unwrap().(*dol.DolTooSmallError); !ok {
		t.Fatalf("expected wrapped DolTooSmallError, got %v (%T)", ferr.Unwrap(), ferr.Unwrap())
	}
}

func TestBuildLayoutError(t *testing.T) {
	// A base image whose single block already reaches into the payload
	// region collides with the encoded DOL payload.
	overlapping := uf2.Encode(make([]byte, 1), uf2.PayloadBase, uf2.RP2040).Bytes()
	_, err := firmware.Build(overlapping, minimalDOL(10), uf2.RP2040)
	ferr, ok := err.(*firmware.Error)
	if !ok {
		t.Fatalf("expected *firmware.Error, got %v (%T)", err, err)
	}
	if ferr.Stage != firmware.StageMerge {
		t.Fatalf("expected StageMerge, got %s", ferr.Stage)
	}
}

// Package buildreport summarizes a completed firmware build for human
// consumption on the CLI. Nothing here is load-bearing: the checksum it
// computes is a diagnostic aid, never part of any format invariant.
package buildreport

import (
	"fmt"

	"github.com/sigurn/crc8"
)

// crcTable uses the CRC-8 parameterization of the N64 controller-pak
// (joybus) protocol, repurposed here purely as a stable, cheap-to-compute
// fingerprint for build logs.
var crcTable = crc8.MakeTable(crc8.Params{
	Poly:   0x85,
	Init:   0x00,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x00,
	Check:  0x2A,
	Name:   "CRC-8 build report",
})

// Report is a human-readable summary of one completed build.
type Report struct {
	OutputBytes  int
	BlockCount   int
	Family       string
	CRC8         uint8
	BaseRange    [2]uint32
	PayloadRange [2]uint32
}

// New computes a Report over the final image bytes.
func New(final []byte, blockCount int, family string, baseRange, payloadRange [2]uint32) Report {
	sum := crc8.Init(crcTable)
	sum = crc8.Update(sum, final, crcTable)
	sum = crc8.Complete(sum, crcTable)

	return Report{
		OutputBytes:  len(final),
		BlockCount:   blockCount,
		Family:       family,
		CRC8:         sum,
		BaseRange:    baseRange,
		PayloadRange: payloadRange,
	}
}

// String renders the report the way the CLI prints it to stdout.
func (r Report) String() string {
	return fmt.Sprintf(
		"built %d bytes (%d blocks), family=%s, crc8=%#02x, base=[%#x,%#x) payload=[%#x,%#x)",
		r.OutputBytes, r.BlockCount, r.Family, r.CRC8,
		r.BaseRange[0], r.BaseRange[1], r.PayloadRange[0], r.PayloadRange[1],
	)
}

// Package firmware orchestrates the end-to-end pipeline that turns a DOL
// executable and a base UF2 image into a single flashable UF2 image: parse
// and validate the DOL (dol), scramble and frame it (iplboot), encode it
// as a UF2 stream at the fixed payload offset (uf2), and merge that stream
// with the caller-supplied base image (uf2).
package firmware

import (
	"github.com/clktmr/gcbootcraft/dol"
	"github.com/clktmr/gcbootcraft/iplboot"
	"github.com/clktmr/gcbootcraft/uf2"
)

// Build runs the full pipeline and returns the final UF2 image bytes. It is
// a pure function: no I/O, no shared state, and no partial output on
// failure.
func Build(baseUF2, dolBytes []byte, family uf2.Family) ([]byte, error) {
	header, err := dol.ParseHeader(dolBytes)
	if err != nil {
		return nil, &Error{Stage: StageParse, Err: err}
	}
	if err := dol.Validate(header, dolBytes); err != nil {
		return nil, &Error{Stage: StageValidate, Err: err}
	}

	// Wraps the entire DOL file, header included, not the flattened
	// section payload dol.ExtractSections would return: this matches the
	// upstream behaviour this pipeline is tested against.
	wrapped := iplboot.Wrap(dolBytes)
	if err := iplboot.Validate(wrapped); err != nil {
		return nil, &Error{Stage: StageWrap, Err: err}
	}

	payloadStream := uf2.Encode(wrapped.Bytes(), uf2.PayloadBase, family)

	// Parsing the base stream is step 1 of the merge contract (C5), so a
	// malformed base image is reported at the merge stage.
	baseStream, err := uf2.ParseStream(baseUF2)
	if err != nil {
		return nil, &Error{Stage: StageMerge, Err: err}
	}

	final, err := uf2.Merge(baseStream, payloadStream)
	if err != nil {
		return nil, &Error{Stage: StageMerge, Err: err}
	}

	return final.Bytes(), nil
}

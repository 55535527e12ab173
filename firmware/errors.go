package firmware

import "fmt"

// Stage names the pipeline phase that produced an Error.
type Stage string

const (
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
	StageWrap     Stage = "wrap"
	StageEncode   Stage = "encode"
	StageMerge    Stage = "merge"
)

// Error wraps an underlying dol/iplboot/uf2 error with the pipeline stage
// it occurred in, so a caller can render a message naming both without
// inspecting the wrapped type.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("firmware: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

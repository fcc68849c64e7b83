package llm

import "fmt"

// Generation stages reported by GenerationError.
const (
	StageRender  = "render"
	StageRequest = "request"
	StageDecode  = "decode"
)

// GenerationError reports a failed structured generation call. Callers must
// not retry: they either propagate it or substitute a fallback value.
type GenerationError struct {
	Stage string // "render", "request", or "decode"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func genErr(stage string, err error) *GenerationError {
	return &GenerationError{Stage: stage, Err: err}
}

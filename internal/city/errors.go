package city

import (
	"errors"
	"fmt"
)

// ErrGeometryEngine matches every failure reported by the geometry engine.
var ErrGeometryEngine = errors.New("geometry engine failure")

// EngineError wraps an engine failure with the operation that hit it. The engine's
// error is passed through as is.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrGeometryEngine, e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrGeometryEngine) hold for any EngineError.
func (e *EngineError) Is(target error) bool {
	return target == ErrGeometryEngine
}

func engineErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &EngineError{Op: op, Err: err}
}

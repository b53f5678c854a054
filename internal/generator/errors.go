package generator

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a generation parameter is out of range.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

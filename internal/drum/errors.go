package drum

import "errors"

// Domain errors for configuration mutations. Per-step physics has no
// failure mode once given valid state; all validation happens here.
var (
	// ErrInvalidConfig indicates a rejected drum parameter update.
	ErrInvalidConfig = errors.New("drum: invalid drum configuration")

	// ErrInvalidBall indicates a rejected ball property value.
	ErrInvalidBall = errors.New("drum: invalid ball property")

	// ErrUnknownPreset indicates an unrecognized ball preset name.
	ErrUnknownPreset = errors.New("drum: unknown ball preset")

	// ErrUnknownProperty indicates an unrecognized ball property name.
	ErrUnknownProperty = errors.New("drum: unknown ball property")
)

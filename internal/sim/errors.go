package sim

import "errors"

// Initialization errors. They are fatal to the NewRun call only and are
// returned wrapped with the offending values; match them with errors.Is.
var (
	ErrInvalidGridDimension = errors.New("sim: invalid grid dimension")
	ErrInvalidStartPosition = errors.New("sim: invalid start position")
	ErrPolicyUnrecognized   = errors.New("sim: unrecognized movement policy")
)

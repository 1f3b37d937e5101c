package styleprof

import "errors"

// ErrInvalidSample marks a sample that failed validation: a missing or
// unknown metric key, or a non-finite value. Invalid samples are rejected
// before any profile state is touched.
var ErrInvalidSample = errors.New("invalid sample")

package jobs

import "errors"

// ErrTypeMismatch is the panic value, wrapped, of a Join on a key whose
// running job produces a different type.
var ErrTypeMismatch = errors.New("jobs: job type mismatch")

package domain

import "errors"

// ErrInvalidTarget reports a malformed host, port, or credential set. It
// aborts the requested operation immediately; nothing retries it.
var ErrInvalidTarget = errors.New("invalid target")

// ErrDependencyMissing reports an absent external binary. It is raised before
// any network activity and aborts the entire run.
var ErrDependencyMissing = errors.New("required external dependency missing")

// ErrGeneration reports a failed wordlist production. It aborts only the
// category that needed the wordlist.
var ErrGeneration = errors.New("wordlist generation failed")

// ErrProbeExecution reports an external tool exiting with an unexpected error
// unrelated to timeout. It is recorded as a Failed outcome and does not abort
// a multi-category run. A timeout is an outcome, never an error.
var ErrProbeExecution = errors.New("probe execution failed")

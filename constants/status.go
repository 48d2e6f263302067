package constants

// RunStatus is the outcome of one analysis run.
type RunStatus string

// Stable values (reported to callers verbatim).
const (
	RunStatusOK     RunStatus = "ok"     // reconciled table produced
	RunStatusEmpty  RunStatus = "empty"  // no extractable order lines
	RunStatusFailed RunStatus = "failed" // aborted, no table emitted
)

package gol

import "fmt"

// ConfigurationError reports parameters that cannot start a run:
// non-positive dimensions, a negative turn count, or a height that
// does not divide evenly between the workers.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// CommunicationFailure reports a point-to-point or collective operation
// that did not complete. Runs are never resumed after one.
type CommunicationFailure struct {
	Op   string // Primitive that failed (send, recv, broadcast, barrier, gather, exchange)
	Rank int    // Rank that observed the failure
	Peer int    // Other side of the operation, -1 for collectives
	Err  error
}

func (e *CommunicationFailure) Error() string {
	if e.Peer < 0 {
		return fmt.Sprintf("rank %d: %s: %v", e.Rank, e.Op, e.Err)
	}
	return fmt.Sprintf("rank %d: %s with rank %d: %v", e.Rank, e.Op, e.Peer, e.Err)
}

func (e *CommunicationFailure) Unwrap() error {
	return e.Err
}

// DataFormatError reports a malformed text grid.
type DataFormatError struct {
	Line   int // 1-based line of the input, 0 when the whole input is at fault
	Reason string
}

func (e *DataFormatError) Error() string {
	if e.Line == 0 {
		return "grid format: " + e.Reason
	}
	return fmt.Sprintf("grid format: line %d: %s", e.Line, e.Reason)
}

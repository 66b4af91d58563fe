package transmission

import (
	"errors"
	"fmt"
)

// ConnError reports a failure to establish the daemon session: the daemon is
// unreachable or rejected the credentials.
type ConnError struct {
	Addr string
	Err  error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("transmission: connect %s: %v", e.Addr, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// DaemonError is a failure the daemon itself reported: the RPC round trip
// succeeded but the result field was not "success". The daemon's message is
// carried verbatim.
type DaemonError struct {
	Method string
	Result string
}

func (e *DaemonError) Error() string {
	return fmt.Sprintf("transmission: %s: %s", e.Method, e.Result)
}

// OpError wraps any other failure during a gateway operation (transport,
// decoding, unexpected response shape).
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("transmission: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// wrapOp classifies an operation failure: daemon-reported and connection
// errors pass through untouched, anything else becomes an OpError.
func wrapOp(op string, err error) error {
	var daemonErr *DaemonError
	if errors.As(err, &daemonErr) {
		return err
	}
	var connErr *ConnError
	if errors.As(err, &connErr) {
		return err
	}
	return &OpError{Op: op, Err: err}
}

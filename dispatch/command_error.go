package dispatch

import "fmt"

// CommandError wraps a store-side failure surfaced to the caller: any
// non-transient failure, or a second consecutive failure after the single
// recovery attempt. The original error is preserved for errors.Is/As.
type CommandError struct {
	Conn    string
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("dispatch: command %s on %q: %v", e.Command, e.Conn, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

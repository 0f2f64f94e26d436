package consumer

import "fmt"

// FatalError is reported when a loop hits a backend failure it cannot
// recover from.
type FatalError struct {
	Queue  string
	Worker string
	Stage  State
	Err    error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("consumer %v on queue %v failed while %v: %v", e.Worker, e.Queue, e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier as string. It is a
// variable so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }

// WorkerID returns an identifier for the n-th consumer of a queue, e.g.
// default/3/1b4e28ba.
func WorkerID(queue string, n int) string {
	id := New()
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s/%d/%s", queue, n, id)
}

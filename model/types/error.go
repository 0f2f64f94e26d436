package types

import "fmt"

func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}

func NewUnknownJobError(name string) error {
	return fmt.Errorf("unknown job %q", name)
}

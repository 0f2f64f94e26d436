package types

import (
	"context"
	"reflect"
)

// Job is a runnable handle registered under a job identifier.
type Job interface {
	// Name returns the identifier producers put into the payload "spider" field.
	Name() string

	// Input returns the type the payload args are converted into before Run is
	// called; nil means Run receives the raw map[string]interface{}.
	Input() reflect.Type

	// Run executes the job.
	Run(ctx context.Context, input interface{}) error
}

// Executable is a function that can be executed
type Executable func(ctx context.Context, input interface{}) error

type funcJob struct {
	name  string
	input reflect.Type
	run   Executable
}

func (j *funcJob) Name() string { return j.name }

func (j *funcJob) Input() reflect.Type { return j.input }

func (j *funcJob) Run(ctx context.Context, input interface{}) error { return j.run(ctx, input) }

// NewFunc creates a job whose args are converted into *T.
func NewFunc[T any](name string, fn func(ctx context.Context, input *T) error) Job {
	return &funcJob{
		name:  name,
		input: reflect.TypeOf((*T)(nil)),
		run: func(ctx context.Context, in interface{}) error {
			input, ok := in.(*T)
			if !ok {
				return NewInvalidInputError(in)
			}
			return fn(ctx, input)
		},
	}
}

// NewMapFunc creates a job receiving the decoded args map as is.
func NewMapFunc(name string, fn func(ctx context.Context, args map[string]interface{}) error) Job {
	return &funcJob{
		name: name,
		run: func(ctx context.Context, in interface{}) error {
			args, ok := in.(map[string]interface{})
			if !ok {
				return NewInvalidInputError(in)
			}
			return fn(ctx, args)
		},
	}
}

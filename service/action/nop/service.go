package nop

import (
	"context"
	"reflect"
)

const name = "nop"

// Service is a job that does nothing.
type Service struct{}

type Input struct{}

// New creates a nop job
func New() *Service {
	return &Service{}
}

// Name returns the job name
func (s *Service) Name() string {
	return name
}

// Input returns the job input type
func (s *Service) Input() reflect.Type {
	return reflect.TypeOf(&Input{})
}

// Run returns immediately
func (s *Service) Run(ctx context.Context, input interface{}) error {
	return nil
}

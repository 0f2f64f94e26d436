package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/structology/conv"

	"github.com/viant/xqueue/model/types"
	"github.com/viant/xqueue/tracing"
)

// Listener is invoked once a job returns, whether it failed or not.
type Listener func(job types.Job, input interface{}, err error)

// Option is used to customise the executor instance.
type Option func(*service)

// WithListener sets the listener invoked after every executed job.
func WithListener(l Listener) Option {
	return func(s *service) {
		s.listener = l
	}
}

// Service represents a job executor.
type Service interface {
	Execute(ctx context.Context, job types.Job, args map[string]interface{}) error
}

// service is the concrete implementation of Service.
type service struct {
	converter *conv.Converter
	listener  Listener
}

// Execute executes a job.
func (s *service) Execute(ctx context.Context, job types.Job, args map[string]interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "job.execute "+job.Name(), "CONSUMER")
	span.WithAttributes(map[string]string{"job.name": job.Name()})
	defer func() { tracing.EndSpan(span, err) }()

	input, err := s.input(job.Input(), args)
	if err != nil {
		return fmt.Errorf("failed to convert args for job %v: %w", job.Name(), err)
	}
	err = job.Run(ctx, input)
	if s.listener != nil {
		s.listener(job, input, err)
	}
	return err
}

func (s *service) input(aType reflect.Type, args map[string]interface{}) (interface{}, error) {
	if aType == nil {
		return args, nil
	}
	instance := newInstancePtr(aType)
	if err := s.converter.Convert(args, instance); err != nil {
		return nil, err
	}
	if aType.Kind() != reflect.Ptr {
		return reflect.ValueOf(instance).Elem().Interface(), nil
	}
	return instance, nil
}

// newInstancePtr creates a new instance pointer of the given type
func newInstancePtr(t reflect.Type) interface{} {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface()
}

// New creates a new executor service instance.
func New(opts ...Option) Service {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	s := &service{
		converter: conv.NewConverter(options),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

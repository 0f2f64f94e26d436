package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/viant/xqueue/model/types"
)

const name = "printer"

// Service is a job printing its message argument.
type Service struct {
	mux    sync.Mutex
	writer io.Writer
}

type Input struct {
	Message string `json:"message"`
}

// New creates a printer writing to w, or to standard output when w is nil
func New(w io.Writer) *Service {
	if w == nil {
		w = os.Stdout
	}
	return &Service{writer: w}
}

// Name returns the job name
func (s *Service) Name() string {
	return name
}

// Input returns the job input type
func (s *Service) Input() reflect.Type {
	return reflect.TypeOf(&Input{})
}

// Run prints the input message
func (s *Service) Run(ctx context.Context, in interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	_, err := fmt.Fprintln(s.writer, input.Message)
	return err
}

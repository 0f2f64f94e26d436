// Package exec provides a job running shell commands on the local host.
package exec

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"

	"github.com/viant/xqueue/model/types"
)

const (
	Name           = "exec"
	defaultTimeout = time.Minute
)

// Service runs shell commands, one shell session per job run.
type Service struct {
	logger *slog.Logger
}

// New creates an exec job; a nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Name returns the job name
func (s *Service) Name() string {
	return Name
}

// Input returns the job input type
func (s *Service) Input() reflect.Type {
	return reflect.TypeOf(&Input{})
}

// Run executes the input commands
func (s *Service) Run(ctx context.Context, in interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, err := s.Execute(ctx, input)
	if err != nil {
		return err
	}
	s.logger.Debug("commands executed", slog.Int("commands", len(output.Commands)), slog.Int("status", output.Status), slog.String("stdout", output.Stdout))
	if input.abortOnError() && output.Status != 0 {
		return fmt.Errorf("command exited with status %d: %s", output.Status, output.Stderr)
	}
	return nil
}

// Execute runs the input commands in a fresh local shell session
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	var options []runner.Option
	if len(input.Env) > 0 {
		options = append(options, runner.WithEnvironment(input.Env))
	}
	session, err := gosh.New(ctx, local.New(options...))
	if err != nil {
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}
	defer session.Close()

	if input.Workdir != "" {
		if _, _, err = session.Run(ctx, "cd "+input.Workdir); err != nil {
			return nil, fmt.Errorf("failed to change directory: %w", err)
		}
	}
	timeout := time.Duration(input.TimeoutMs) * time.Millisecond
	if timeout == 0 {
		timeout = defaultTimeout
	}

	output := &Output{Commands: make([]*Command, 0, len(input.Commands))}
	var stdout, stderr strings.Builder
	for _, cmd := range input.Commands {
		command := s.executeCommand(ctx, session, cmd, timeout)
		output.Commands = append(output.Commands, command)
		if command.Output != "" {
			stdout.WriteString(command.Output)
			stdout.WriteString("\n")
		}
		if command.Stderr != "" {
			stderr.WriteString(command.Stderr)
			stderr.WriteString("\n")
		}
		output.Status = command.Status
		if input.abortOnError() && command.Status != 0 {
			break
		}
	}
	output.Stdout = strings.TrimSpace(stdout.String())
	output.Stderr = strings.TrimSpace(stderr.String())
	return output, nil
}

func (s *Service) executeCommand(ctx context.Context, session *gosh.Service, cmd string, timeout time.Duration) *Command {
	ret := &Command{Input: cmd}
	stdout, status, err := session.Run(ctx, cmd, runner.WithTimeout(int(timeout.Milliseconds())))
	ret.Status = status
	if status == 0 && err == nil {
		ret.Output = stdout
		return ret
	}
	if status == 0 {
		ret.Status = -1
	}
	switch {
	case stdout != "":
	case err != nil:
		stdout = err.Error()
	default:
		stdout = fmt.Sprintf("exit status %d", ret.Status)
	}
	ret.Stderr = stdout
	return ret
}

// Package decoder turns raw backlog payloads into jobs.
//
// Decoding never fails because of damaged args: a payload whose args field is
// not an object (null included) still decodes, with empty args and
// ArgsReplaced set, so the caller can log it and move on. Only payloads that
// are not valid UTF-8 or not a JSON object at all produce a StatusMalformed
// result.
package decoder

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/viant/xqueue/model"
)

const (
	jobField  = "spider"
	argsField = "args"
)

// Status tags a Result.
type Status int

const (
	// StatusDecoded means Result.Job is set.
	StatusDecoded Status = iota
	// StatusMalformed means Result.Err is set.
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusDecoded:
		return "decoded"
	case StatusMalformed:
		return "malformed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// DecodeError describes a payload that could not be parsed.
type DecodeError struct {
	Payload []byte
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid task payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Result is the outcome of decoding a single payload.
type Result struct {
	Status Status
	Job    *model.Job
	Err    *DecodeError
	// ArgsReplaced is set when args was present but not an object.
	ArgsReplaced bool
	// RawArgs holds the replaced args value.
	RawArgs json.RawMessage
}

// OK reports whether the payload decoded into a job.
func (r *Result) OK() bool {
	return r.Status == StatusDecoded
}

// Decode parses a backlog payload.
func Decode(payload []byte) Result {
	if !utf8.Valid(payload) {
		return Result{Status: StatusMalformed, Err: &DecodeError{Payload: payload, Err: fmt.Errorf("payload is not valid UTF-8")}}
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return Result{Status: StatusMalformed, Err: &DecodeError{Payload: payload, Err: err}}
	}
	if fields == nil { // JSON null
		return Result{Status: StatusMalformed, Err: &DecodeError{Payload: payload, Err: fmt.Errorf("payload is null")}}
	}
	ret := Result{Status: StatusDecoded, Job: model.NewJob(jobID(fields[jobField]), nil)}
	raw, ok := fields[argsField]
	if !ok {
		return ret
	}
	args := map[string]interface{}{}
	if err := json.Unmarshal(raw, &args); err != nil || isNull(raw) {
		ret.ArgsReplaced = true
		ret.RawArgs = raw
		return ret
	}
	ret.Job.Args = args
	return ret
}

// jobID returns the string value of the job field; other JSON values keep
// their literal text so that they surface as unknown jobs at dispatch time.
func jobID(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var ret string
	if err := json.Unmarshal(raw, &ret); err == nil {
		return ret
	}
	return string(raw)
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

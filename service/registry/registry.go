// Package registry maps job identifiers to runnable jobs.
//
// A Registry is built once at startup and never mutated afterwards, so every
// consumer loop reads it concurrently without locking.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/xqueue/model/types"
)

var (
	// ErrDuplicateJob is returned when two jobs share a name.
	ErrDuplicateJob = errors.New("duplicate job")
	// ErrNoJobs is returned by Validate for an empty registry.
	ErrNoJobs = errors.New("no jobs registered")
)

// Registry provides job lookup by name.
type Registry struct {
	jobs map[string]types.Job
}

// Lookup returns a job by name
func (r *Registry) Lookup(name string) (types.Job, bool) {
	job, ok := r.jobs[name]
	return job, ok
}

// Names returns registered job names in lexical order.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Len returns the number of registered jobs.
func (r *Registry) Len() int {
	return len(r.jobs)
}

// Validate returns ErrNoJobs when nothing is registered.
func (r *Registry) Validate() error {
	if len(r.jobs) == 0 {
		return ErrNoJobs
	}
	return nil
}

// New creates a registry holding the supplied jobs.
func New(jobs ...types.Job) (*Registry, error) {
	ret := &Registry{jobs: make(map[string]types.Job, len(jobs))}
	for _, job := range jobs {
		if job == nil {
			continue
		}
		name := job.Name()
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("job name was empty: %T", job)
		}
		if _, ok := ret.jobs[name]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateJob, name)
		}
		ret.jobs[name] = job
	}
	return ret, nil
}

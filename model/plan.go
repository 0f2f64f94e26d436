package model

import (
	"fmt"
	"sort"
	"strings"
)

// Plan maps a queue suffix to the number of consumer loops started for it.
type Plan map[string]int

// NewPlan copies the supplied worker counts into a plan and validates it.
func NewPlan(workers map[string]int) (Plan, error) {
	ret := make(Plan, len(workers))
	for suffix, count := range workers {
		ret[suffix] = count
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate returns an error when the plan cannot be started.
func (p Plan) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("plan has no queues")
	}
	for suffix, count := range p {
		if strings.TrimSpace(suffix) == "" {
			return fmt.Errorf("queue suffix cannot be empty")
		}
		if strings.Contains(suffix, ".") {
			return fmt.Errorf("queue suffix %q cannot contain '.'", suffix)
		}
		if count <= 0 {
			return fmt.Errorf("queue %q: worker count must be > 0, got %d", suffix, count)
		}
	}
	return nil
}

// Suffixes returns the queue suffixes in lexical order.
func (p Plan) Suffixes() []string {
	ret := make([]string, 0, len(p))
	for suffix := range p {
		ret = append(ret, suffix)
	}
	sort.Strings(ret)
	return ret
}

// Workers returns the total number of consumer loops across all queues.
func (p Plan) Workers() int {
	total := 0
	for _, count := range p {
		total += count
	}
	return total
}

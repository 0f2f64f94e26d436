package model

// Job represents a decoded backlog payload.
type Job struct {
	// ID names the registered job to run (the "spider" payload field). It may
	// reference a job that is not registered.
	ID string `json:"spider"`
	// Args is never nil.
	Args map[string]interface{} `json:"args"`
}

// NewJob creates a job, normalising nil args to an empty map.
func NewJob(id string, args map[string]interface{}) *Job {
	if args == nil {
		args = map[string]interface{}{}
	}
	return &Job{ID: id, Args: args}
}

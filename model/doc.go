// Package model contains the in-memory representation of queues and jobs
// used by the xqueue engine.
//
// A queue is identified by a short suffix (for example "default") inside a
// configured namespace. Every suffix owns three backend keys (see KeySet):
// the backlog list producers push onto, a finished counter and a rolling
// per-minute rate counter. A Plan maps each suffix to the number of
// consumer loops started for it, and a Job is the decoded unit of work
// popped from a backlog.
package model

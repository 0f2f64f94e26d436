// Package consumer runs a single queue consumer loop.
//
// A Loop owns one backend connection. It blocks on the backlog list, decodes
// every popped payload, dispatches the job and records the completion, over
// and over. Backend failures are never retried: the loop reports a
// FatalError and stops, and the owner of the pool is expected to terminate
// the process.
package consumer

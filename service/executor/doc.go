// Package executor runs a resolved job with the args of a decoded payload.
// The default implementation converts the args map into the job's declared
// input type before calling it, and wraps every run in a tracing span.
package executor

// Package tracing wraps OpenTelemetry so that job executions can be traced
// without the rest of the code base importing the SDK. Until Init or
// InitWithExporter is called spans are no-ops.
package tracing

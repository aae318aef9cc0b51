// Package logger wraps zap with a process-wide sugared logger.
//
// The logger travels in a context: services call WithName or WithKV once at
// their entry point and every helper (Infof, WarnKV, ...) picks it up from the
// context they receive. A context without a logger falls back to the global one.
package logger

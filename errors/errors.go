package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which lifecycle stage the error occurred in
type Phase string

const (
	PhaseAcquire  Phase = "acquire"  // taking ownership of a resource
	PhaseTransfer Phase = "transfer" // moving ownership between handles
	PhaseRelease  Phase = "release"  // releasing a resource
	PhaseTrack    Phase = "track"    // registry bookkeeping
	PhasePool     Phase = "pool"     // pool operations
)

// Kind categorizes the error
type Kind string

const (
	KindDoubleRelease  Kind = "double_release"
	KindClosed         Kind = "closed"
	KindInvalidID      Kind = "invalid_id"
	KindReleaserFailed Kind = "releaser_failed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Label  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Label != "" {
		b.WriteString(" (")
		b.WriteString(e.Label)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Label sets the resource label
func (b *Builder) Label(label string) *Builder {
	b.err.Label = label
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Closed creates an error for an operation on a closed component
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// InvalidID creates an error for an unknown or stale registry ID
func InvalidID(phase Phase, id uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidID,
		Detail: fmt.Sprintf("id %d is not live", id),
	}
}

// DoubleRelease creates an error for a tracked resource released twice
func DoubleRelease(id uint32) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindDoubleRelease,
		Detail: fmt.Sprintf("id %d was already released", id),
	}
}

// ReleaserFailed wraps a releaser error with the resource it was releasing
func ReleaserFailed(phase Phase, label string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindReleaserFailed,
		Label: label,
		Cause: cause,
	}
}

// LeakedEntry describes one resource still live when its registry closed
type LeakedEntry struct {
	ID     uint32
	Kind   string
	Label  string
	Age    string
	Origin []string
}

// LeakError is returned when a registry closes with live resources
type LeakError struct {
	Entries []LeakedEntry
}

func (e *LeakError) Error() string {
	if len(e.Entries) == 0 {
		return "[track] leak: no entries recorded"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d resource(s) still live at close:\n", len(e.Entries)))

	for _, entry := range e.Entries {
		b.WriteString("\n  ")
		b.WriteString(fmt.Sprintf("#%d %s", entry.ID, entry.Kind))
		if entry.Label != "" {
			b.WriteString(" (")
			b.WriteString(entry.Label)
			b.WriteByte(')')
		}
		if entry.Age != "" {
			b.WriteString(" live for ")
			b.WriteString(entry.Age)
		}
		b.WriteByte('\n')
		for _, frame := range entry.Origin {
			b.WriteString("    ")
			b.WriteString(frame)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *LeakError) Is(target error) bool {
	_, ok := target.(*LeakError)
	return ok
}

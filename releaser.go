package owned

import "io"

// Releaser releases a resource when its ownership ends. A Releaser is
// invoked at most once per resource; its error is propagated unchanged to
// whoever triggered the release.
type Releaser[T any] func(T) error

// Dropper is optionally implemented by resource values that need cleanup
// but have no error to report.
type Dropper interface {
	Drop()
}

// NoopReleaser returns a releaser that does nothing. Useful for resources
// whose lifetime is managed elsewhere but whose ownership discipline is
// still worth modeling.
func NoopReleaser[T any]() Releaser[T] {
	return func(T) error { return nil }
}

// CloseReleaser returns a releaser that closes the resource.
func CloseReleaser[T io.Closer]() Releaser[T] {
	return func(v T) error { return v.Close() }
}

// DefaultReleaser returns the releaser selected when New is given nil:
// Drop() if the value implements Dropper, Close() if it implements
// io.Closer, otherwise nothing.
func DefaultReleaser[T any]() Releaser[T] {
	return func(v T) error {
		switch r := any(v).(type) {
		case Dropper:
			r.Drop()
			return nil
		case io.Closer:
			return r.Close()
		}
		return nil
	}
}

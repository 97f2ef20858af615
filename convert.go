package owned

// Convert transfers ownership from a handle of one resource kind into a
// handle of a related kind, such as a concrete type narrowing to an
// interface it implements. The source is emptied and its releaser travels
// with the resource: releasing the converted handle releases the original
// value through the original releaser.
//
// Converting an empty handle yields an empty handle.
func Convert[T, U any](src *Handle[T], conv func(T) U) Handle[U] {
	if !src.owned {
		return Handle[U]{}
	}
	value, rel := src.value, src.releaser
	src.clear()
	return Handle[U]{
		value: conv(value),
		owned: true,
		releaser: func(U) error {
			if rel == nil {
				return nil
			}
			return rel(value)
		},
	}
}

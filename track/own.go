package track

import (
	"github.com/thomasding/owned"
	"github.com/thomasding/owned/errors"
)

// Own constructs a tracked owning handle. The resource is registered
// under kind and label, and the handle's releaser untracks it after the
// underlying release runs. A failing release comes back as a
// KindReleaserFailed error carrying the label, with the underlying
// error as its cause. A nil rel selects owned.DefaultReleaser.
//
// The returned ID stays valid until the handle (or whichever handle the
// resource moves into) is closed; use it with Registry.Move to keep the
// registry's label current across transfers.
func Own[T any](r *Registry, value T, rel owned.Releaser[T], kind, label string) (owned.Handle[T], ID) {
	if rel == nil {
		rel = owned.DefaultReleaser[T]()
	}
	id := r.Acquire(kind, label)
	return owned.New(value, func(v T) error {
		err := rel(v)
		r.Release(id)
		if err != nil {
			return errors.New(errors.PhaseRelease, errors.KindReleaserFailed).
				Label(label).
				Cause(err).
				Build()
		}
		return nil
	}), id
}

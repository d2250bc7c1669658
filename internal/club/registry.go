package club

import "github.com/cockroachdb/errors"

// Registry is an ordered in-memory list of clubs with the Store rules applied.
// File-backed stores load a Registry, mutate it and save it back.
type Registry []Club

// Index returns the position of the first club that is the same as c, or -1.
func (r Registry) Index(c Club) int {
	for i, existing := range r {
		if existing.SameAs(c) {
			return i
		}
	}
	return -1
}

// IndexKey returns the position of the first club matching key, or -1.
func (r Registry) IndexKey(key string) int {
	for i, existing := range r {
		if existing.Matches(key) {
			return i
		}
	}
	return -1
}

// Add appends c unless it duplicates an existing entry.
func (r *Registry) Add(c Club) (Club, bool, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return Club{}, false, err
	}
	if i := r.Index(c); i >= 0 {
		return (*r)[i], false, nil
	}
	*r = append(*r, c)
	return c, true, nil
}

// Refresh updates the entry matching c.
func (r Registry) Refresh(c Club) (Club, error) {
	c = c.Normalize()
	i := r.Index(c)
	if i < 0 {
		return Club{}, errors.Wrapf(ErrNotFound, "%q", c.Name)
	}
	updated := r[i].WithRefresh(c)
	if err := updated.Validate(); err != nil {
		return Club{}, err
	}
	r[i] = updated
	return updated, nil
}

// Remove deletes the first club matching key.
func (r *Registry) Remove(key string) error {
	i := r.IndexKey(key)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "%q", key)
	}
	*r = append((*r)[:i], (*r)[i+1:]...)
	return nil
}

// Get returns the first club matching key.
func (r Registry) Get(key string) (Club, error) {
	i := r.IndexKey(key)
	if i < 0 {
		return Club{}, errors.Wrapf(ErrNotFound, "%q", key)
	}
	return r[i], nil
}

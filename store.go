package metadoc

import "sync"

// Store owns a single metadata document and serializes every operation on it
// behind one exclusive lock. The document starts as an empty Node and is only
// ever swapped for a fully validated replacement, so readers never observe a
// partially applied write and the Leaf/Node invariant holds after every
// successful mutation.
//
// Construct stores explicitly with New and hand the pointer to whichever
// component serves requests; there is no package-level instance.
type Store struct {
	mu  sync.Mutex
	doc any
}

// New returns a store holding an empty document.
func New() *Store {
	return &Store{doc: Node{}}
}

// Replace validates candidate and installs a deep copy of it as the new
// document. On ErrUnsupportedValueType the current document is left
// untouched; no partial write is ever observable. The candidate may be a bare
// string, making the root a leaf.
func (s *Store) Replace(candidate any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := Validate(candidate); err != nil {
		return err
	}
	s.doc = Clone(candidate)
	return nil
}

// Merge applies a JSON Merge Patch to the document. The merge runs against
// the live tree without mutating it; the result is validated before being
// committed, so a patch that would introduce a value shape Replace rejects
// fails with ErrUnsupportedValueType and leaves the document unchanged.
func (s *Store) Merge(patch any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := MergePatch(s.doc, patch)
	if err := Validate(merged); err != nil {
		return err
	}
	s.doc = merged
	return nil
}

// Resolve navigates the document by a slash-delimited path and returns a deep
// copy of the value found there, or ErrNotFound. Returning a copy keeps
// callers from aliasing the live tree outside the lock.
func (s *Store) Resolve(path string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := ResolvePath(s.doc, path)
	if err != nil {
		return nil, err
	}
	return Clone(v), nil
}

// Render flattens a resolved value into its line listing. A leaf renders as a
// single line holding its string. A Node renders one line per child key in
// insertion order, with a trailing "/" on keys whose child is itself a Node
// so path walkers can tell traversable entries from terminal ones. Any other
// shape reports ErrUnsupportedValueType; with a validated document that is
// unreachable.
func Render(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case Node:
		lines := make([]string, len(t))
		for i, e := range t {
			if _, ok := e.Value.(Node); ok {
				lines[i] = e.Key + "/"
			} else {
				lines[i] = e.Key
			}
		}
		return lines, nil
	default:
		return nil, ErrUnsupportedValueType
	}
}

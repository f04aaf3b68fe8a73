package metadoc

import "strings"

// ResolvePath walks root by a slash-delimited path and returns the value it
// names, or ErrNotFound. Empty segments are discarded, so leading, trailing
// and duplicate slashes collapse; an all-empty path resolves to root itself.
// Each remaining segment must name a key in the current Node, compared by
// exact case-sensitive equality; there is no wildcard or partial matching.
func ResolvePath(root any, path string) (any, error) {
	cur := root
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		n, ok := cur.(Node)
		if !ok {
			return nil, ErrNotFound
		}
		child, found := n.Get(seg)
		if !found {
			return nil, ErrNotFound
		}
		cur = child
	}
	return cur, nil
}

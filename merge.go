package metadoc

// MergePatch applies a JSON Merge Patch (RFC 7396) to target and returns the
// merged value. Neither input is mutated; any structure taken from patch is
// deep-copied into the result. The operation is total: it succeeds for any
// pair of values, including shapes the validator would reject.
//
// Rules:
//   - A non-Node patch replaces the target wholesale, whatever its shape.
//   - A Node patch merges key by key. A nil patch value deletes the key
//     (deleting an absent key is a no-op); any other value is merged
//     recursively against the existing value at that key.
//   - A non-Node target merges as if it were an empty Node: its prior value
//     is discarded.
//   - Target keys not mentioned by the patch keep their relative order; keys
//     introduced by the patch are appended in patch order.
func MergePatch(target, patch any) any {
	p, ok := patch.(Node)
	if !ok {
		return Clone(patch)
	}
	t, _ := target.(Node)
	out := Clone(t).(Node)
	for _, pe := range p {
		if pe.Value == nil {
			out = out.delete(pe.Key)
			continue
		}
		if existing, found := out.Get(pe.Key); found {
			out = out.set(pe.Key, MergePatch(existing, pe.Value))
		} else {
			// Absent key: merge against nothing so nested deletions inside
			// the patch value do not materialize as entries.
			out = out.set(pe.Key, MergePatch(nil, pe.Value))
		}
	}
	return out
}

// Package metadoc implements an in-memory hierarchical metadata document. The
// value model is a restricted subset of JSON with exactly two shapes: string
// leaves and Nodes, ordered collections of named child values. The restriction
// makes every stored value addressable by a filesystem-like slash path with no
// ambiguity about whether a component is traversable or terminal.
package metadoc

// Node represents a document node, defined as an ordered collection of
// key-value pairs. Entry order is insertion order and determines listing
// order on read; keys are unique within a Node.
type Node []Entry

// Array represents a JSON array decoded from a request body. Arrays are not
// part of the storable value model and never survive validation; the type
// exists so the decoder can represent them before the validator rejects them.
type Array []any

// Entry represents a single entry in a Node. It consists of a string key and
// an associated value: a string leaf, a child Node, or (prior to validation)
// any other decoded JSON value.
type Entry struct {
	Key   string
	Value any
}

// Get returns the value stored under key and whether the key is present.
func (n Node) Get(key string) (any, bool) {
	if i := n.index(key); i >= 0 {
		return n[i].Value, true
	}
	return nil, false
}

// index returns the position of key within n, or -1.
func (n Node) index(key string) int {
	for i, e := range n {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// set updates the value under key in place, preserving its position, or
// appends a new entry when the key is absent.
func (n Node) set(key string, value any) Node {
	if i := n.index(key); i >= 0 {
		n[i].Value = value
		return n
	}
	return append(n, Entry{Key: key, Value: value})
}

// delete removes key from n if present. Deleting an absent key is a no-op.
func (n Node) delete(key string) Node {
	if i := n.index(key); i >= 0 {
		return append(n[:i], n[i+1:]...)
	}
	return n
}

// Clone returns a deep copy of v. Node and Array values are copied
// recursively so the result shares no structure with the input; scalar values
// are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case Node:
		out := make(Node, len(t))
		for i, e := range t {
			out[i] = Entry{Key: e.Key, Value: Clone(e.Value)}
		}
		return out
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

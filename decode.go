package metadoc

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal decodes JSON data into the metadoc value model: objects become
// Node values with keys in token order, arrays become Array, and scalars
// decode to string, float64, bool or nil. Duplicate keys within one object
// are a decode error. The result is not validated; run Validate (or let the
// store do it) before treating it as a document.
func Unmarshal(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v, json.WithUnmarshalers(Unmarshalers())); err != nil {
		return nil, err
	}
	return v, nil
}

// Unmarshalers returns the set of unmarshalers allowing decoding into:
//   - any/interface{} -> objects as Node, arrays as Array
//   - *Node           -> direct ordered object decoding
func Unmarshalers() *json.Unmarshalers {
	return json.JoinUnmarshalers(
		unmarshalValue(),
		unmarshalNode(),
	)
}

// unmarshalValue wraps JSON objects as Node (ordered) rather than
// map[string]any and JSON arrays as Array so callers can distinguish them
// from []any. Primitive JSON values (string, number, bool, null) are left to
// the default logic by returning json.SkipFunc.
func unmarshalValue() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			obj, err := decodeObject(dec)
			if err != nil {
				return err
			}
			*v = obj
			return nil
		case '[':
			arr, err := decodeArray(dec)
			if err != nil {
				return err
			}
			*v = arr
			return nil
		default:
			return json.SkipFunc
		}
	})
}

// unmarshalNode provides decoding of a JSON object into a *Node when the
// target type is *Node (ordered key preservation).
func unmarshalNode() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Node) error {
		if dec.PeekKind() != '{' {
			return json.SkipFunc
		}
		obj, err := decodeObject(dec)
		if err != nil {
			return err
		}
		*v = obj
		return nil
	})
}

// decodeObject decodes a JSON object into a Node, entry order matching token
// order. Empty objects ({}) produce an empty non-nil Node.
func decodeObject(dec *jsontext.Decoder) (Node, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	obj := Node{}
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		var vv any
		if err := json.UnmarshalDecode(dec, &vv); err != nil {
			return nil, fmt.Errorf("read object value for key %q: %w", k, err)
		}
		obj = append(obj, Entry{Key: k, Value: vv})
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return obj, nil
}

// decodeArray decodes a JSON array into Array.
func decodeArray(dec *jsontext.Decoder) (Array, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := Array{}
	for dec.PeekKind() != ']' {
		var elem any
		if err := json.UnmarshalDecode(dec, &elem); err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		arr = append(arr, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}

package metadoc

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshal encodes v back to JSON. Node entries are written in order, so a
// value produced by Unmarshal round-trips with identical key order.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v, json.WithMarshalers(Marshalers()))
}

// Marshalers returns the marshalers encoding Node and Array values.
func Marshalers() *json.Marshalers {
	return json.JoinMarshalers(
		json.MarshalToFunc(encodeNode),
		json.MarshalToFunc(encodeArray),
	)
}

func encodeNode(enc *jsontext.Encoder, n Node) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for _, e := range n {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return fmt.Errorf("write object key %q: %w", e.Key, err)
		}
		if err := json.MarshalEncode(enc, e.Value); err != nil {
			return fmt.Errorf("write object value for key %q: %w", e.Key, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}

func encodeArray(enc *jsontext.Encoder, a Array) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return fmt.Errorf("write array open: %w", err)
	}
	for i, e := range a {
		if err := json.MarshalEncode(enc, e); err != nil {
			return fmt.Errorf("write array element %d: %w", i, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndArray); err != nil {
		return fmt.Errorf("write array close: %w", err)
	}
	return nil
}

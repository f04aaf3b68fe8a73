package metadoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("leaf is valid", func(t *testing.T) {
		require.NoError(t, Validate("12345"))
		require.NoError(t, Validate(""))
	})

	t.Run("empty node is valid", func(t *testing.T) {
		require.NoError(t, Validate(Node{}))
	})

	t.Run("nested leaf-node tree is valid", func(t *testing.T) {
		doc := Node{
			{Key: "name", Value: Node{
				{Key: "first", Value: "John"},
				{Key: "second", Value: "Doe"},
			}},
			{Key: "age", Value: "43"},
		}
		require.NoError(t, Validate(doc))
	})

	t.Run("number is rejected", func(t *testing.T) {
		require.ErrorIs(t, Validate(float64(43)), ErrUnsupportedValueType)
	})

	t.Run("boolean is rejected", func(t *testing.T) {
		require.ErrorIs(t, Validate(true), ErrUnsupportedValueType)
	})

	t.Run("null is rejected", func(t *testing.T) {
		require.ErrorIs(t, Validate(nil), ErrUnsupportedValueType)
	})

	t.Run("array is rejected", func(t *testing.T) {
		require.ErrorIs(t, Validate(Array{"a", "b"}), ErrUnsupportedValueType)
	})

	t.Run("violation deep in the tree is found", func(t *testing.T) {
		doc := Node{
			{Key: "name", Value: Node{
				{Key: "first", Value: "John"},
			}},
			{Key: "age", Value: float64(43)},
		}
		require.ErrorIs(t, Validate(doc), ErrUnsupportedValueType)
	})

	t.Run("validate decoded document", func(t *testing.T) {
		require.NoError(t, Validate(unmarshal(t, `{"a":{"b":"c"},"d":"e"}`)))
		require.ErrorIs(t, Validate(unmarshal(t, `{"a":{"b":"c"},"d":1}`)), ErrUnsupportedValueType)
	})
}

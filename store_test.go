package metadoc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// snapshot encodes the store's full document for byte-for-byte comparison.
func snapshot(t *testing.T, s *Store) string {
	t.Helper()
	v, err := s.Resolve("")
	require.NoError(t, err)
	data, err := Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestStoreReplace(t *testing.T) {
	t.Run("new store holds an empty node", func(t *testing.T) {
		s := New()
		require.Equal(t, `{}`, snapshot(t, s))
	})

	t.Run("valid document is installed", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace(unmarshal(t, `{"a":{"b":"c"},"d":"e"}`)))
		require.Equal(t, `{"a":{"b":"c"},"d":"e"}`, snapshot(t, s))
	})

	t.Run("root may be a leaf", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace("bare"))
		v, err := s.Resolve("")
		require.NoError(t, err)
		require.Equal(t, "bare", v)
	})

	t.Run("invalid document leaves prior document unchanged", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace(unmarshal(t, `{"a":"1"}`)))
		before := snapshot(t, s)

		err := s.Replace(unmarshal(t, `{"a":"1","age":43}`))
		require.ErrorIs(t, err, ErrUnsupportedValueType)
		require.Equal(t, before, snapshot(t, s))
	})

	t.Run("store does not alias the candidate", func(t *testing.T) {
		s := New()
		candidate := Node{{Key: "a", Value: Node{{Key: "b", Value: "c"}}}}
		require.NoError(t, s.Replace(candidate))
		candidate[0].Value.(Node)[0].Value = "changed"
		require.Equal(t, `{"a":{"b":"c"}}`, snapshot(t, s))
	})
}

func TestStoreMerge(t *testing.T) {
	t.Run("patch is merged and committed", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace(unmarshal(t, `{"a":{"b":"c"},"d":"e"}`)))
		require.NoError(t, s.Merge(unmarshal(t, `{"a":{"b":"f"}}`)))
		require.Equal(t, `{"a":{"b":"f"},"d":"e"}`, snapshot(t, s))
	})

	t.Run("null deletes a key", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace(unmarshal(t, `{"a":{"b":"c"},"d":"e"}`)))
		require.NoError(t, s.Merge(unmarshal(t, `{"a":{"b":null}}`)))
		require.Equal(t, `{"a":{},"d":"e"}`, snapshot(t, s))
	})

	t.Run("merge into empty store", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Merge(unmarshal(t, `{"a":"1"}`)))
		require.Equal(t, `{"a":"1"}`, snapshot(t, s))
	})

	t.Run("invalid merge result rolls back", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace(unmarshal(t, `{"a":"1"}`)))
		before := snapshot(t, s)

		err := s.Merge(unmarshal(t, `{"b":42}`))
		require.ErrorIs(t, err, ErrUnsupportedValueType)
		require.Equal(t, before, snapshot(t, s))
	})

	t.Run("non-node patch replaces the whole document", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace(unmarshal(t, `{"a":"1"}`)))
		require.NoError(t, s.Merge("leaf"))
		v, err := s.Resolve("")
		require.NoError(t, err)
		require.Equal(t, "leaf", v)
	})
}

func TestStoreResolve(t *testing.T) {
	t.Run("resolve returns a copy", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Replace(unmarshal(t, `{"a":{"b":"c"}}`)))
		v, err := s.Resolve("a")
		require.NoError(t, err)
		v.(Node)[0].Value = "changed"
		require.Equal(t, `{"a":{"b":"c"}}`, snapshot(t, s))
	})

	t.Run("missing path", func(t *testing.T) {
		s := New()
		_, err := s.Resolve("missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRender(t *testing.T) {
	t.Run("leaf renders as its string", func(t *testing.T) {
		lines, err := Render("12345")
		require.NoError(t, err)
		require.Equal(t, []string{"12345"}, lines)
	})

	t.Run("node children listed in insertion order", func(t *testing.T) {
		lines, err := Render(Node{
			{Key: "c1", Value: "12345"},
			{Key: "c2", Value: "6789"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"c1", "c2"}, lines)
	})

	t.Run("child nodes carry a trailing slash", func(t *testing.T) {
		lines, err := Render(Node{
			{Key: "dir", Value: Node{{Key: "x", Value: "y"}}},
			{Key: "leaf", Value: "v"},
			{Key: "empty", Value: Node{}},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"dir/", "leaf", "empty/"}, lines)
	})

	t.Run("empty node renders no lines", func(t *testing.T) {
		lines, err := Render(Node{})
		require.NoError(t, err)
		require.Len(t, lines, 0)
	})

	t.Run("unsupported shape", func(t *testing.T) {
		_, err := Render(float64(1))
		require.ErrorIs(t, err, ErrUnsupportedValueType)
	})
}

func TestStoreConcurrency(t *testing.T) {
	// Hammer one store from concurrent writers and readers. Every read must
	// observe some fully applied document: both keys written by Replace, or
	// the exact merged shape, never a torn mix.
	s := New()
	require.NoError(t, s.Replace(unmarshal(t, `{"left":"0","right":"0"}`)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Replace(Node{{Key: "left", Value: "1"}, {Key: "right", Value: "1"}})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Merge(Node{{Key: "left", Value: "2"}, {Key: "right", Value: "2"}})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v, err := s.Resolve("")
				require.NoError(t, err)
				n := v.(Node)
				left, _ := n.Get("left")
				right, _ := n.Get("right")
				require.Equal(t, left, right, "torn read: %v", n)
			}
		}()
	}
	wg.Wait()
}

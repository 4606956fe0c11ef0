package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexFetch(t *testing.T) {
	dict := newDict()
	list := newList()

	t.Run("map key", func(t *testing.T) {
		v, err := NewIndex("a").Fetch(dict)
		require.NoError(t, err)
		assert.Equal(t, "a value", v)
	})

	t.Run("missing map key", func(t *testing.T) {
		_, err := NewIndex("missing").Fetch(dict)
		var nf *NameNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "[missing]", nf.Accessor)
	})

	t.Run("wrong key type misses", func(t *testing.T) {
		_, err := NewIndex(0).Fetch(map[string]any{"0": "zero"})
		var nf *NameNotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("slice position", func(t *testing.T) {
		v, err := NewIndex(1).Fetch(list)
		require.NoError(t, err)
		assert.Equal(t, "one", v)
	})

	t.Run("negative position counts back", func(t *testing.T) {
		v, err := NewIndex(-3).Fetch(list)
		require.NoError(t, err)
		assert.Equal(t, "zero", v)
	})

	t.Run("position out of range", func(t *testing.T) {
		_, err := NewIndex(10).Fetch(list)
		var nf *NameNotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("non-integer position", func(t *testing.T) {
		_, err := NewIndex("a").Fetch(list)
		var tm *TypeMismatchError
		assert.ErrorAs(t, err, &tm)
	})

	t.Run("unindexable target", func(t *testing.T) {
		_, err := NewIndex("a").Fetch(42)
		var tm *TypeMismatchError
		assert.ErrorAs(t, err, &tm)
	})
}

func TestIndexPlace(t *testing.T) {
	t.Run("map key", func(t *testing.T) {
		dict := newDict()
		require.NoError(t, NewIndex("new").Place(dict, "new value"))
		assert.Equal(t, "new value", dict["new"])
	})

	t.Run("overwrite map key", func(t *testing.T) {
		dict := newDict()
		require.NoError(t, NewIndex("a").Place(dict, "replaced"))
		assert.Equal(t, "replaced", dict["a"])
	})

	t.Run("slice position in range", func(t *testing.T) {
		list := newList()
		require.NoError(t, NewIndex(0).Place(list, "replaced"))
		assert.Equal(t, "replaced", list[0])
	})

	t.Run("negative slice position", func(t *testing.T) {
		list := newList()
		require.NoError(t, NewIndex(-1).Place(list, "last"))
		assert.Equal(t, "last", list[len(list)-1])
	})

	t.Run("growth needs a pointer", func(t *testing.T) {
		list := newList()
		err := NewIndex(10).Place(list, "far")
		var nf *NameNotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("grows through a pointer with nil padding", func(t *testing.T) {
		list := []any{"zero"}
		require.NoError(t, NewIndex(4).Place(&list, "four"))
		require.Len(t, list, 5)
		assert.Equal(t, "zero", list[0])
		assert.Nil(t, list[1])
		assert.Nil(t, list[2])
		assert.Nil(t, list[3])
		assert.Equal(t, "four", list[4])
	})

	t.Run("append just past the end", func(t *testing.T) {
		list := []any{"zero"}
		require.NoError(t, NewIndex(1).Place(&list, "one"))
		assert.Equal(t, []any{"zero", "one"}, list)
	})

	t.Run("unindexable target", func(t *testing.T) {
		err := NewIndex("a").Place(42, "x")
		var tm *TypeMismatchError
		assert.ErrorAs(t, err, &tm)
	})
}

package jsonpath

import (
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/atlas"
)

const storeDoc = `{
	"store": {
		"book": [
			{"title": "Sayings of the Century", "price": 8.95},
			{"title": "Sword of Honour", "price": 12.99}
		]
	}
}`

func TestToPath(t *testing.T) {
	data, err := oj.ParseString(storeDoc)
	require.NoError(t, err)

	t.Run("dot notation", func(t *testing.T) {
		p, err := ToPath("$.store.book[1].title")
		require.NoError(t, err)
		require.Equal(t, 4, p.Len())
		assert.Equal(t, atlas.KindIndex, p.At(0).Kind())
		assert.Equal(t, "store", p.At(0).Name())
		assert.Equal(t, 1, p.At(2).Name())

		v, err := p.Fetch(data)
		require.NoError(t, err)
		assert.Equal(t, "Sword of Honour", v)
	})

	t.Run("bracket notation", func(t *testing.T) {
		p, err := ToPath("$['store']['book'][0]['price']")
		require.NoError(t, err)
		v, err := p.Fetch(data)
		require.NoError(t, err)
		assert.Equal(t, 8.95, v)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := ToPath("$[")
		assert.Error(t, err)
	})

	t.Run("non-singular selectors rejected", func(t *testing.T) {
		for _, expr := range []string{"$.store.*", "$..title", "$.store.book[0:1]"} {
			_, err := ToPath(expr)
			assert.Error(t, err, expr)
		}
	})
}

func TestFromPath(t *testing.T) {
	t.Run("index accessors", func(t *testing.T) {
		p := atlas.New(atlas.NewIndex("store"), atlas.NewIndex("book"), atlas.NewIndex(1))
		expr, err := FromPath(p)
		require.NoError(t, err)
		assert.Equal(t, "$.store.book[1]", expr)
	})

	t.Run("fallback accessors with string names", func(t *testing.T) {
		expr, err := FromPath(atlas.New("store/book"))
		require.NoError(t, err)
		assert.Equal(t, "$.store.book", expr)
	})

	t.Run("attr accessors have no form", func(t *testing.T) {
		_, err := FromPath(atlas.New(atlas.NewAttr("Field")))
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		p, err := ToPath("$.store.book[1].title")
		require.NoError(t, err)
		expr, err := FromPath(p)
		require.NoError(t, err)
		assert.Equal(t, "$.store.book[1].title", expr)

		back, err := ToPath(expr)
		require.NoError(t, err)
		assert.True(t, back.Equal(p))
	})
}

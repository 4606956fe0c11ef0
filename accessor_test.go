package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessorShorthand(t *testing.T) {
	cases := []struct {
		text string
		kind string
		name any
	}{
		{"[key]", KindIndex, "key"},
		{"[2]", KindIndex, "2"},
		{"@field", KindAttr, "field"},
		{"method()", KindCall, "method"},
		{"anything", KindFallback, "anything"},
		{"1", KindFallback, "1"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			acc, err := NewAccessor(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, acc.Kind())
			assert.Equal(t, tc.name, acc.Name())
		})
	}
}

func TestNewAccessorRawValues(t *testing.T) {
	t.Run("int becomes index", func(t *testing.T) {
		acc, err := NewAccessor(5)
		require.NoError(t, err)
		assert.Equal(t, KindIndex, acc.Kind())
		assert.Equal(t, 5, acc.Name())
	})

	t.Run("accessor passes through", func(t *testing.T) {
		attr := NewAttr("field")
		acc, err := NewAccessor(attr)
		require.NoError(t, err)
		assert.Equal(t, Accessor(attr), acc)
	})

	t.Run("empty string rejected", func(t *testing.T) {
		_, err := NewAccessor("")
		require.Error(t, err)
	})
}

func TestAccessorStrings(t *testing.T) {
	assert.Equal(t, "[key]", NewIndex("key").String())
	assert.Equal(t, "[3]", NewIndex(3).String())
	assert.Equal(t, "@field", NewAttr("field").String())
	assert.Equal(t, "method()", NewCall("method").String())
	assert.Equal(t, "name", NewFallback("name").String())
}

func TestAccessorEquality(t *testing.T) {
	t.Run("same kind same name", func(t *testing.T) {
		assert.True(t, Equal(NewAttr("a"), NewAttr("a")))
		assert.True(t, Equal(NewIndex(1), NewIndex(1)))
		assert.True(t, Equal(NewCall("a"), NewCall("a")))
	})

	t.Run("same kind different name", func(t *testing.T) {
		assert.False(t, Equal(NewAttr("a"), NewAttr("b")))
		assert.False(t, Equal(NewIndex(1), NewIndex(2)))
		assert.False(t, Equal(NewIndex(1), NewIndex("1")))
	})

	t.Run("different concrete kinds", func(t *testing.T) {
		assert.False(t, Equal(NewAttr("a"), NewCall("a")))
		assert.False(t, Equal(NewIndex("a"), NewAttr("a")))
	})

	t.Run("fallback matches pooled kinds", func(t *testing.T) {
		fb := NewFallback("a")
		assert.True(t, Equal(fb, NewAttr("a")))
		assert.True(t, Equal(NewAttr("a"), fb))
		assert.True(t, Equal(fb, NewIndex("a")))
		assert.True(t, Equal(fb, NewCall("a")))
		assert.True(t, Equal(fb, NewFallback("a")))
	})

	t.Run("fallback still needs the name", func(t *testing.T) {
		assert.False(t, Equal(NewFallback("a"), NewAttr("b")))
		assert.False(t, Equal(NewFallback(1), NewIndex("1")))
	})

	t.Run("restricted pool excludes kinds", func(t *testing.T) {
		fb := NewFallback("a").WithPool([]Variant{IndexVariant})
		assert.True(t, Equal(fb, NewIndex("a")))
		assert.False(t, Equal(fb, NewAttr("a")))
	})
}

func TestSortAccessors(t *testing.T) {
	accs := []Accessor{
		NewFallback("z"),
		NewCall("b"),
		NewAttr("b"),
		NewIndex("b"),
		NewCall("a"),
		NewAttr("a"),
		NewIndex("a"),
		NewIndex(2),
		NewIndex(1),
	}
	SortAccessors(accs)

	want := []Accessor{
		NewIndex(1),
		NewIndex(2),
		NewIndex("a"),
		NewIndex("b"),
		NewAttr("a"),
		NewAttr("b"),
		NewCall("a"),
		NewCall("b"),
		NewFallback("z"),
	}
	require.Len(t, accs, len(want))
	for i := range want {
		assert.Equal(t, want[i].Kind(), accs[i].Kind(), "position %d", i)
		assert.Equal(t, want[i].Name(), accs[i].Name(), "position %d", i)
	}
}

func TestCustomVariantGrammar(t *testing.T) {
	// a toy variant addressing "#n" shorthand as an index
	hash := Variant{
		Kind: "hash",
		Parse: func(text string) (any, error) {
			if len(text) < 2 || text[0] != '#' {
				return nil, &ParseError{Kind: "hash", Text: text}
			}
			return text[1:], nil
		},
		Cast: func(name any) (Accessor, error) {
			s, ok := name.(string)
			if !ok {
				return nil, &TypeMismatchError{Reason: "hash name must be a string"}
			}
			return NewIndex(s), nil
		},
	}
	g := NewGrammar(hash)

	t.Run("custom shorthand wins", func(t *testing.T) {
		acc, err := g.Accessor("#a")
		require.NoError(t, err)
		assert.Equal(t, KindIndex, acc.Kind())
		assert.Equal(t, "a", acc.Name())
	})

	t.Run("built-ins still parse", func(t *testing.T) {
		acc, err := g.Accessor("@a")
		require.NoError(t, err)
		assert.Equal(t, KindAttr, acc.Kind())
	})

	t.Run("fallback pool includes the custom kind", func(t *testing.T) {
		acc, err := g.Accessor("bare")
		require.NoError(t, err)
		fb, ok := acc.(Fallback)
		require.True(t, ok)
		assert.True(t, fb.poolHas("hash"))
	})
}

package atlas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func (c *counter) Value() int { return c.n }

func (c *counter) Add(delta int) int {
	c.n += delta
	return c.n
}

func (c *counter) Reset() {}

func (c *counter) Checked() (int, error) {
	if c.n < 0 {
		return 0, errors.New("negative count")
	}
	return c.n, nil
}

func TestCallFetch(t *testing.T) {
	t.Run("zero-argument method", func(t *testing.T) {
		v, err := NewCall("Value").Fetch(&counter{n: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("configured arguments", func(t *testing.T) {
		c := &counter{n: 1}
		v, err := NewCall("Add", 4).Fetch(c)
		require.NoError(t, err)
		assert.Equal(t, 5, v)
		assert.Equal(t, 5, c.n)
	})

	t.Run("no results yields nil", func(t *testing.T) {
		v, err := NewCall("Reset").Fetch(&counter{})
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("trailing error is unwrapped", func(t *testing.T) {
		v, err := NewCall("Checked").Fetch(&counter{n: 7})
		require.NoError(t, err)
		assert.Equal(t, 7, v)

		_, err = NewCall("Checked").Fetch(&counter{n: -1})
		require.EqualError(t, err, "negative count")
	})

	t.Run("missing method", func(t *testing.T) {
		_, err := NewCall("Missing").Fetch(&counter{})
		var nf *NameNotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := NewCall("Value", 1).Fetch(&counter{})
		var tm *TypeMismatchError
		assert.ErrorAs(t, err, &tm)
	})

	t.Run("wrong argument type", func(t *testing.T) {
		_, err := NewCall("Add", "four").Fetch(&counter{})
		var tm *TypeMismatchError
		assert.ErrorAs(t, err, &tm)
	})

	t.Run("func field acts as a method", func(t *testing.T) {
		rec := newRecord()
		v, err := NewCall("Hook").Fetch(rec)
		require.NoError(t, err)
		assert.Equal(t, "hooked", v)
	})
}

func TestCallPlace(t *testing.T) {
	t.Run("value prepended by default", func(t *testing.T) {
		rec := newRecord()
		require.NoError(t, NewCall("Capture").Place(rec, "payload"))
		assert.Equal(t, "payload", rec.captured)
	})

	t.Run("value substitutes the marked slot", func(t *testing.T) {
		c := &counter{n: 10}
		require.NoError(t, NewCall("Add", ValueArg).Place(c, 7))
		assert.Equal(t, 17, c.n)
	})

	t.Run("error result aborts", func(t *testing.T) {
		sink := &errSink{fail: true}
		err := NewCall("Accept").Place(sink, "x")
		require.EqualError(t, err, "sink closed")
	})
}

type errSink struct {
	fail bool
	got  any
}

func (s *errSink) Accept(v any) error {
	if s.fail {
		return errors.New("sink closed")
	}
	s.got = v
	return nil
}

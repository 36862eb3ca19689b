package fn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnd(t *testing.T) {
	t.Run("it should be true only when all predicates are true", func(t *testing.T) {
		// GIVEN
		positive := func(i int) bool { return i > 0 }
		even := func(i int) bool { return i%2 == 0 }

		// WHEN
		both := And[int](positive, even)

		// THEN
		assert.True(t, both(4))
		assert.False(t, both(3))
		assert.False(t, both(-2))
	})

	t.Run("it should be true without any predicate", func(t *testing.T) {
		assert.True(t, And[string]()("anything"))
	})
}

func TestAllTriConsumer(t *testing.T) {
	t.Run("it should call all consumers in order", func(t *testing.T) {
		// GIVEN
		var calls []string
		first := func(a string, b int, c bool) { calls = append(calls, "first:"+a) }
		second := func(a string, b int, c bool) { calls = append(calls, "second:"+a) }

		// WHEN
		AllTriConsumer[string, int, bool](first, second)("x", 1, true)

		// THEN
		assert.Equal(t, []string{"first:x", "second:x"}, calls)
	})
}

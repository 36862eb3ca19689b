package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type lookupOptions struct {
	Name     string
	Private  bool
	Priority int
}

func withName(name string) Option[lookupOptions] {
	return func(opts *lookupOptions) {
		opts.Name = name
	}
}

func withPrivate() Option[lookupOptions] {
	return func(opts *lookupOptions) {
		opts.Private = true
	}
}

func withPriority(priority int) Option[lookupOptions] {
	return func(opts *lookupOptions) {
		opts.Priority = priority
	}
}

func TestBuild(t *testing.T) {
	t.Run("it should apply options in order, last one wins", func(t *testing.T) {
		// GIVEN
		defaults := &lookupOptions{Name: "default"}

		// WHEN
		result := Build(defaults, withName("first"), withPriority(3), withName("second"))

		// THEN
		assert.Same(t, defaults, result)
		assert.Equal(t, "second", result.Name)
		assert.Equal(t, 3, result.Priority)
		assert.False(t, result.Private)
	})

	t.Run("it should keep defaults without options", func(t *testing.T) {
		// GIVEN
		defaults := &lookupOptions{Name: "default", Priority: 1}

		// WHEN
		result := Build(defaults)

		// THEN
		assert.Equal(t, &lookupOptions{Name: "default", Priority: 1}, result)
	})

	t.Run("it should ignore nil options", func(t *testing.T) {
		// WHEN
		result := Build(&lookupOptions{}, nil, withPrivate(), nil)

		// THEN
		assert.True(t, result.Private)
	})
}

func TestMerge(t *testing.T) {
	t.Run("it should apply merged options in order", func(t *testing.T) {
		// GIVEN
		merged := Merge(withPriority(1), withName("merged"), withPriority(2))

		// WHEN
		result := Build(&lookupOptions{}, merged)

		// THEN
		assert.Equal(t, "merged", result.Name)
		assert.Equal(t, 2, result.Priority)
	})
}

func TestWhen(t *testing.T) {
	t.Run("it should only apply the option when the condition holds", func(t *testing.T) {
		// WHEN
		applied := Build(&lookupOptions{}, When(true, withPrivate()))
		skipped := Build(&lookupOptions{}, When(false, withPrivate()))

		// THEN
		assert.True(t, applied.Private)
		assert.False(t, skipped.Private)
	})
}

package shifter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator(t *testing.T) {
	t.Run("it should locate a registered instance", func(t *testing.T) {
		// GIVEN
		locator := NewLocator(New().MustAddInstance("The string that should be returned."))

		// WHEN
		service, errService := locator.GetService(TypeOf[string]())
		instance, errInstance := locator.GetInstance(TypeOf[string]())
		typed, errTyped := GetInstance[string](locator)

		// THEN
		require.NoError(t, errService)
		require.NoError(t, errInstance)
		require.NoError(t, errTyped)
		assert.Equal(t, "The string that should be returned.", service)
		assert.Equal(t, "The string that should be returned.", instance)
		assert.Equal(t, "The string that should be returned.", typed)
	})

	t.Run("it should locate all instances of a type", func(t *testing.T) {
		// GIVEN
		locator := NewLocator(New().
			MustAddInstance(1).
			MustAddInstance("All").
			MustAddInstance(1).
			MustAddInstance("Instances").
			MustAddInstance("Are").
			MustAddInstance(1).
			MustAddInstance("Retrieved"))

		// WHEN
		raw, errRaw := locator.GetAllInstances(TypeOf[string]())
		typed, errTyped := GetAllInstances[string](locator)

		// THEN
		require.NoError(t, errRaw)
		require.NoError(t, errTyped)
		assert.Equal(t, []any{"All", "Instances", "Are", "Retrieved"}, raw)
		assert.Equal(t, []string{"All", "Instances", "Are", "Retrieved"}, typed)
	})

	t.Run("it should require the exact requested type", func(t *testing.T) {
		// GIVEN
		c := New().MustAddType(TypeOf[Greeter](), TypeOf[DefaultGreeter]())
		locator := NewLocator(c)

		// WHEN
		direct, errDirect := Resolve[Greeter](c)
		_, errLocated := GetInstance[Greeter](locator)

		// THEN
		require.NoError(t, errDirect)
		assert.Equal(t, DefaultGreeter{}, direct)
		require.Error(t, errLocated)
		assert.ErrorIs(t, errLocated, ErrActivationFailed)
		assert.ErrorIs(t, errLocated, ErrIncompatibleRegistration)
	})

	t.Run("it should wrap container failures in activation errors", func(t *testing.T) {
		// GIVEN
		locator := NewLocator(New())

		// WHEN
		_, err := locator.GetInstance(TypeOf[*Engine]())

		// THEN
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrActivationFailed)
		assert.ErrorIs(t, err, ErrNotRegistered)
		var activation *ActivationError
		require.ErrorAs(t, err, &activation)
		assert.Equal(t, TypeOf[*Engine](), activation.Type)
	})

	t.Run("it should locate named instances", func(t *testing.T) {
		// GIVEN
		engine := &Engine{Power: 3}
		locator := NewLocator(New().
			MustAddNamedInstance("engine", engine).
			MustAddInstance("by type"))

		// WHEN
		named, errNamed := GetNamedInstance[*Engine](locator, "engine")
		byType, errByType := locator.GetNamedInstance(TypeOf[string](), "")
		_, errWrongType := locator.GetNamedInstance(TypeOf[string](), "engine")
		_, errMissing := locator.GetNamedInstance(TypeOf[string](), "missing")

		// THEN
		require.NoError(t, errNamed)
		require.NoError(t, errByType)
		assert.Same(t, engine, named)
		assert.Equal(t, "by type", byType)
		assert.ErrorIs(t, errWrongType, ErrActivationFailed)
		assert.ErrorIs(t, errMissing, ErrActivationFailed)
		assert.ErrorIs(t, errMissing, ErrNotRegistered)
	})

	t.Run("it should pass invalid arguments through without an activation failure", func(t *testing.T) {
		// GIVEN
		locator := NewLocator(New())

		// WHEN
		_, errAll := locator.GetAllInstances(nil)
		_, errOne := locator.GetInstance(nil)
		_, errNamed := locator.GetNamedInstance(nil, "")

		// THEN
		for _, err := range []error{errAll, errOne, errNamed} {
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.NotErrorIs(t, err, ErrActivationFailed)
			var activationErr *ActivationError
			assert.False(t, errors.As(err, &activationErr))
		}
	})
}

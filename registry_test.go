package shifter

import (
	"errors"
	"strings"
	"testing"

	"github.com/a-peyrard/shifter/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type multiRegistry struct {
	EmptyRegistry
}

func (multiRegistry) Declare(c *Container) error {
	return Declare[*Multi](c, meta.DeclareConstructor(NewMultiB, meta.Inject()))
}

type failingRegistry struct{}

func (failingRegistry) Declare(*Container) error {
	return errors.New("cannot declare")
}

func TestInstall(t *testing.T) {
	t.Run("it should declare the registries in the container", func(t *testing.T) {
		// GIVEN
		c := New().MustAddType(TypeOf[*Multi](), TypeOf[*Multi]())

		// WHEN
		err := c.Install(EmptyRegistry{}, multiRegistry{})

		// THEN
		require.NoError(t, err)
		multi, err := Resolve[*Multi](c)
		require.NoError(t, err)
		assert.Equal(t, "B", multi.From)
	})

	t.Run("it should report every failing registry", func(t *testing.T) {
		// GIVEN
		c := New()

		// WHEN
		err := c.Install(failingRegistry{}, multiRegistry{}, failingRegistry{})

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot declare")
		assert.Equal(t, 2, strings.Count(err.Error(), "failed to install registry"))
	})
}

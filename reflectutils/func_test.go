package reflectutils

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	value string
}

func (s *sample) hidden(v string) { s.value = v }

func (s *sample) Visible(v string) { s.value = v }

func newSample() *sample { return &sample{} }

func TestFuncName(t *testing.T) {
	t.Run("it should return the qualified name of a function", func(t *testing.T) {
		// WHEN
		name := FuncName(reflect.ValueOf(newSample))

		// THEN
		assert.True(t, strings.HasSuffix(name, "reflectutils.newSample"), name)
	})

	t.Run("it should return an empty name for non functions", func(t *testing.T) {
		assert.Equal(t, "", FuncName(reflect.ValueOf(42)))
		assert.Equal(t, "", FuncName(reflect.ValueOf((func())(nil))))
	})
}

func TestShortFuncName(t *testing.T) {
	testCases := []struct {
		qualified string
		expected  string
	}{
		{qualified: "github.com/acme/app/worker.NewWorker", expected: "NewWorker"},
		{qualified: "github.com/acme/app/worker.(*Worker).init", expected: "init"},
		{qualified: "github.com/acme/app/worker.Worker.Start", expected: "Start"},
		{qualified: "github.com/acme/app/worker.(*Worker).SetName-fm", expected: "SetName"},
		{qualified: "github.com/acme/app/worker.NewBox[...]", expected: "NewBox"},
		{qualified: "github.com/acme/app/worker.TestSomething.func1", expected: ""},
		{qualified: "github.com/acme/app/worker.TestSomething.func1.2", expected: ""},
		{qualified: "github.com/acme/app/worker.glob..func3", expected: ""},
		{qualified: "main", expected: ""},
	}

	for _, tc := range testCases {
		t.Run("it should extract the identifier of "+tc.qualified, func(t *testing.T) {
			assert.Equal(t, tc.expected, ShortFuncName(tc.qualified))
		})
	}

	t.Run("it should extract names of method expressions at runtime", func(t *testing.T) {
		// WHEN
		hidden := ShortFuncName(FuncName(reflect.ValueOf((*sample).hidden)))
		visible := ShortFuncName(FuncName(reflect.ValueOf((*sample).Visible)))

		// THEN
		assert.Equal(t, "hidden", hidden)
		assert.Equal(t, "Visible", visible)
	})
}

func TestIsExportedFunc(t *testing.T) {
	t.Run("it should follow go exportedness rules", func(t *testing.T) {
		assert.True(t, IsExportedFunc("github.com/acme/app/worker.NewWorker"))
		assert.False(t, IsExportedFunc("github.com/acme/app/worker.newWorker"))
		assert.False(t, IsExportedFunc("github.com/acme/app/worker.(*Worker).init"))
	})

	t.Run("it should consider anonymous functions as exported", func(t *testing.T) {
		// GIVEN
		closure := func() *sample { return nil }

		// WHEN
		exported := IsExportedFunc(FuncName(reflect.ValueOf(closure)))

		// THEN
		assert.True(t, exported)
	})
}

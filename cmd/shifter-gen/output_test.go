package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/a-peyrard/shifter/set"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_findSuitableAlias(t *testing.T) {
	t.Run("it should find an alias", func(t *testing.T) {
		// GIVEN
		pkg := "github.com/a-peyrard/shifter/fn"
		aliases := set.NewWithValues[string]()

		// WHEN
		alias := findSuitableAlias(pkg, aliases)

		// THEN
		assert.Equal(t, "fn", alias)
	})

	t.Run("it should use previous token if we have a collision", func(t *testing.T) {
		// GIVEN
		pkg := "github.com/a-peyrard/shifter/fn"
		aliases := set.NewWithValues("fn")

		// WHEN
		alias := findSuitableAlias(pkg, aliases)

		// THEN
		assert.Equal(t, "sfn", alias)
	})

	t.Run("it should exhaust all tokens if we have a collision", func(t *testing.T) {
		// GIVEN
		pkg := "github.com/a-peyrard/shifter/fn"
		aliases := set.NewWithValues("fn", "sfn", "asfn")

		// WHEN
		alias := findSuitableAlias(pkg, aliases)

		// THEN
		assert.Equal(t, "gasfn", alias)
	})

	t.Run("it should start incrementing when we don't have tokens anymore and still have a collision", func(t *testing.T) {
		// GIVEN
		pkg := "github.com/a-peyrard/shifter/fn"
		aliases := set.NewWithValues("fn", "sfn", "asfn", "gasfn", "gasfn0", "gasfn1")

		// WHEN
		alias := findSuitableAlias(pkg, aliases)

		// THEN
		assert.Equal(t, "gasfn2", alias)
	})

	t.Run("it should remove characters not allowed in identifiers", func(t *testing.T) {
		// GIVEN
		pkg := "example.com/go-kit"
		aliases := set.New[string]()

		// WHEN
		alias := findSuitableAlias(pkg, aliases)

		// THEN
		assert.Equal(t, "gokit", alias)
	})
}

func Test_generateFQN(t *testing.T) {
	t.Run("it should return type name when import path is empty", func(t *testing.T) {
		// WHEN
		result := generateFQN("", "MyType", map[string]string{})

		// THEN
		assert.Equal(t, "MyType", result)
	})

	t.Run("it should return type name for the local package", func(t *testing.T) {
		// WHEN
		result := generateFQN("example.com/local", "*MyType", map[string]string{})

		// THEN
		assert.Equal(t, "*MyType", result)
	})

	t.Run("it should prepend alias for regular type", func(t *testing.T) {
		// GIVEN
		importWithAlias := map[string]string{"github.com/example/pkg": "pkg"}

		// WHEN
		result := generateFQN("github.com/example/pkg", "MyType", importWithAlias)

		// THEN
		assert.Equal(t, "pkg.MyType", result)
	})

	t.Run("it should handle pointer types correctly", func(t *testing.T) {
		// GIVEN
		importWithAlias := map[string]string{"github.com/example/pkg": "pkg"}

		// WHEN
		result := generateFQN("github.com/example/pkg", "*MyType", importWithAlias)

		// THEN
		assert.Equal(t, "*pkg.MyType", result)
	})
}

func Test_generateSource(t *testing.T) {
	logger := zerolog.Nop()
	registry := &RegistryDefinition{PackageName: "app", ImportPath: "example.com/app", StructName: "Registry"}
	worker := TypeRef{ImportPath: "example.com/app/worker", Name: "Worker", Pointer: true}
	local := TypeRef{ImportPath: "example.com/app", Name: "Service", Pointer: true}

	t.Run("it should declare the members grouped by type", func(t *testing.T) {
		// GIVEN
		members := []MemberDefinition{
			{Kind: constructorKind, Target: worker, FuncName: "NewWorker", ImportPath: worker.ImportPath, Inject: true},
			{Kind: constructorKind, Target: local, FuncName: "newService", ImportPath: local.ImportPath, Visibility: "private"},
			{Kind: propertyKind, Target: worker, FuncName: "SetName", ImportPath: worker.ImportPath, Inject: true},
			{Kind: methodKind, Target: local, FuncName: "init", ImportPath: local.ImportPath, Inject: true},
			{Kind: propertyKind, Target: local, FuncName: "setLogger", ImportPath: local.ImportPath, Inject: true, Visibility: "public"},
		}

		// WHEN
		source, err := generateSource(&logger, registry, members)

		// THEN
		require.NoError(t, err)
		code := string(source)
		assert.Contains(t, code, "// Code generated by shifter-gen; DO NOT EDIT.")
		assert.Contains(t, code, "package app")
		assert.Contains(t, code, `worker "example.com/app/worker"`)
		assert.Contains(t, code, "func (Registry) Declare(c *shifter.Container) error {")
		assert.Contains(t, code, "shifter.Declare[*worker.Worker](c,\n\t\t\tmeta.DeclareConstructor(worker.NewWorker, meta.Inject()),\n\t\t\tmeta.DeclareProperty(\"Name\", meta.Inject()),\n\t\t),")
		assert.Contains(t, code, "shifter.Declare[*Service](c,")
		assert.Contains(t, code, "meta.DeclareConstructor(newService, meta.AsPrivate()),")
		assert.Contains(t, code, "meta.DeclareMethod((*Service).init, meta.Inject()),")
		assert.Contains(t, code, `meta.DeclareProperty("Logger", meta.Setter((*Service).setLogger), meta.Inject(), meta.AsPublic()),`)
	})

	t.Run("it should skip unexported members of other packages", func(t *testing.T) {
		// GIVEN
		members := []MemberDefinition{
			{Kind: methodKind, Target: worker, FuncName: "init", ImportPath: worker.ImportPath, Inject: true},
		}

		// WHEN
		source, err := generateSource(&logger, registry, members)

		// THEN
		require.NoError(t, err)
		code := string(source)
		assert.NotContains(t, code, "init")
		assert.NotContains(t, code, "example.com/app/worker")
		assert.Contains(t, code, "return nil")
	})
}

type failingTempFile struct {
	name string
}

func (f failingTempFile) Name() string { return f.name }

func (f failingTempFile) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func (f failingTempFile) Close() error { return nil }

func Test_writeFileAtomic(t *testing.T) {
	t.Run("it should write the whole file", func(t *testing.T) {
		// GIVEN
		target := filepath.Join(t.TempDir(), "registry_gen.go")

		// WHEN
		err := writeFileAtomic(target, []byte("package app\n"), 0o644)

		// THEN
		require.NoError(t, err)
		content, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "package app\n", string(content))
	})

	t.Run("it should remove the temporary file on failure", func(t *testing.T) {
		// GIVEN
		var removed string
		originalCreate, originalRemove := createTempFile, removeFile
		t.Cleanup(func() {
			createTempFile, removeFile = originalCreate, originalRemove
		})
		createTempFile = func(string, string) (tempFile, error) {
			return failingTempFile{name: "tmp-file"}, nil
		}
		removeFile = func(path string) error {
			removed = path
			return nil
		}

		// WHEN
		err := writeFileAtomic(filepath.Join(t.TempDir(), "registry_gen.go"), []byte("package app\n"), 0o644)

		// THEN
		require.Error(t, err)
		assert.Equal(t, "tmp-file", removed)
	})
}

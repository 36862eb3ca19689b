package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/a-peyrard/shifter/set"
	"github.com/rs/zerolog"
)

type (
	importDefinition struct {
		Alias string
		Path  string
	}

	targetDefinition struct {
		Type         string
		Declarations []string
	}

	templateData struct {
		PackageName string
		StructName  string
		Imports     []importDefinition
		Targets     []targetDefinition
	}
)

var reservedAliases = []string{"errors", "shifter", "meta"}

var genTemplate = template.Must(
	template.New("shifter-gen").Parse(`// Code generated by shifter-gen; DO NOT EDIT.

package {{.PackageName}}

import (
{{- if .Targets}}
	"errors"
{{end}}
	"github.com/a-peyrard/shifter"
{{- if .Targets}}
	"github.com/a-peyrard/shifter/meta"
{{- end}}
{{range .Imports}}
	{{.Alias}} "{{.Path}}"
{{- end}}
)

// Declare records the annotated constructors, methods and properties in the container.
func ({{.StructName}}) Declare(c *shifter.Container) error {
{{- if .Targets}}
	return errors.Join(
{{- range .Targets}}
		shifter.Declare[{{.Type}}](c,
{{- range .Declarations}}
			{{.}},
{{- end}}
		),
{{- end}}
	)
{{- else}}
	return nil
{{- end}}
}
`),
)

// generateSource renders the Declare method of the registry for the given members.
func generateSource(logger *zerolog.Logger, registry *RegistryDefinition, members []MemberDefinition) ([]byte, error) {
	members = declarableMembers(logger, registry, members)

	importWithAlias := assignAliases(registry, members)
	data := templateData{
		PackageName: registry.PackageName,
		StructName:  registry.StructName,
	}
	for path, alias := range importWithAlias {
		data.Imports = append(data.Imports, importDefinition{Alias: alias, Path: path})
	}
	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	targetIndex := make(map[TypeRef]int)
	for _, member := range members {
		idx, found := targetIndex[member.Target]
		if !found {
			idx = len(data.Targets)
			targetIndex[member.Target] = idx
			data.Targets = append(data.Targets, targetDefinition{
				Type: renderType(member.Target, importWithAlias),
			})
		}
		data.Targets[idx].Declarations = append(
			data.Targets[idx].Declarations,
			renderDeclaration(member, importWithAlias),
		)
	}

	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("failed to render registry %s:\n\t%w", registry.StructName, err)
	}
	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code:\n\t%w", err)
	}
	return formatted, nil
}

// declarableMembers drops the unexported members of other packages, generated code cannot reach them.
func declarableMembers(logger *zerolog.Logger, registry *RegistryDefinition, members []MemberDefinition) []MemberDefinition {
	var declarable []MemberDefinition
	for _, member := range members {
		if !member.IsExported() && member.ImportPath != registry.ImportPath {
			logger.Warn().Msgf(
				"%s %s of %s is not exported and not in the registry package, skipping it",
				member.Kind, member.FuncName, member.ImportPath,
			)
			continue
		}
		declarable = append(declarable, member)
	}
	return declarable
}

func assignAliases(registry *RegistryDefinition, members []MemberDefinition) map[string]string {
	paths := set.New[string]()
	for _, member := range members {
		for _, path := range []string{member.Target.ImportPath, member.ImportPath} {
			if path != "" && path != registry.ImportPath {
				paths.Add(path)
			}
		}
	}

	sorted := make([]string, 0, paths.Size())
	for path := range paths {
		sorted = append(sorted, path)
	}
	sort.Strings(sorted)

	aliases := set.NewWithValues(reservedAliases...)
	importWithAlias := make(map[string]string, len(sorted))
	for _, path := range sorted {
		alias := findSuitableAlias(path, aliases)
		aliases.Add(alias)
		importWithAlias[path] = alias
	}
	return importWithAlias
}

// findSuitableAlias uses the last element of the import path, prefixed by the initials of the
// previous elements on collision, then suffixed by a counter.
func findSuitableAlias(pkg string, aliases set.Set[string]) string {
	tokens := strings.Split(pkg, "/")
	alias := sanitizeAlias(tokens[len(tokens)-1])
	for i := len(tokens) - 2; aliases.Contains(alias) && i >= 0; i-- {
		alias = sanitizeAlias(tokens[i])[:1] + alias
	}
	if !aliases.Contains(alias) {
		return alias
	}
	for counter := 0; ; counter++ {
		candidate := alias + strconv.Itoa(counter)
		if !aliases.Contains(candidate) {
			return candidate
		}
	}
}

func sanitizeAlias(token string) string {
	sanitized := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return -1
		}
		return r
	}, token)
	if sanitized == "" {
		return "pkg"
	}
	return sanitized
}

// generateFQN qualifies typeName, which may be a pointer, with the alias of its package.
func generateFQN(importPath, typeName string, importWithAlias map[string]string) string {
	alias, found := importWithAlias[importPath]
	if importPath == "" || !found {
		return typeName
	}
	if name, isPointer := strings.CutPrefix(typeName, "*"); isPointer {
		return "*" + alias + "." + name
	}
	return alias + "." + typeName
}

func renderType(t TypeRef, importWithAlias map[string]string) string {
	name := t.Name
	if t.Pointer {
		name = "*" + name
	}
	return generateFQN(t.ImportPath, name, importWithAlias)
}

func renderDeclaration(member MemberDefinition, importWithAlias map[string]string) string {
	var args []string
	switch member.Kind {
	case constructorKind:
		args = append(args, generateFQN(member.ImportPath, member.FuncName, importWithAlias))
		return "meta.DeclareConstructor(" + strings.Join(append(args, renderOptions(member)...), ", ") + ")"
	case propertyKind:
		args = append(args, strconv.Quote(member.PropertyName()))
		if !member.IsExported() {
			args = append(args, "meta.Setter("+methodExpression(member, importWithAlias)+")")
		}
		return "meta.DeclareProperty(" + strings.Join(append(args, renderOptions(member)...), ", ") + ")"
	default:
		if member.IsExported() {
			args = append(args, strconv.Quote(member.FuncName))
		} else {
			args = append(args, methodExpression(member, importWithAlias))
		}
		return "meta.DeclareMethod(" + strings.Join(append(args, renderOptions(member)...), ", ") + ")"
	}
}

func methodExpression(member MemberDefinition, importWithAlias map[string]string) string {
	receiver := renderType(member.Target, importWithAlias)
	if member.Target.Pointer {
		receiver = "(" + receiver + ")"
	}
	return receiver + "." + member.FuncName
}

func renderOptions(member MemberDefinition) []string {
	var options []string
	if member.Inject {
		options = append(options, "meta.Inject()")
	}
	switch member.Visibility {
	case "private":
		options = append(options, "meta.AsPrivate()")
	case "public":
		options = append(options, "meta.AsPublic()")
	}
	return options
}

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file in the same directory, then renames it over targetPath.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := createTempFile(filepath.Dir(targetPath), filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}

package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

const shifterImportPath = "github.com/a-peyrard/shifter"

type memberKind int

const (
	constructorKind memberKind = iota
	methodKind
	propertyKind
)

type (
	// MemberDefinition is an annotated constructor, method or setter found in the module.
	MemberDefinition struct {
		Kind       memberKind
		Target     TypeRef
		FuncName   string
		ImportPath string
		Inject     bool
		Visibility string
	}

	RegistryDefinition struct {
		PackageName string
		ImportPath  string
		StructName  string
	}
)

func (k memberKind) String() string {
	switch k {
	case constructorKind:
		return "constructor"
	case methodKind:
		return "method"
	case propertyKind:
		return "property"
	}
	return "unknown"
}

func (m MemberDefinition) String() string {
	return fmt.Sprintf(
		`✨ %s: %s
Target: %s
Import Path: %s
Inject: %t
Visibility: %s`,
		m.Kind,
		m.FuncName,
		m.Target,
		m.ImportPath,
		m.Inject,
		m.Visibility,
	)
}

// PropertyName is the name of the property set by an annotated setter, SetName or setName give Name.
func (m MemberDefinition) PropertyName() string {
	for _, prefix := range []string{"Set", "set"} {
		if rest, found := strings.CutPrefix(m.FuncName, prefix); found && rest != "" && unicode.IsUpper(rune(rest[0])) {
			return rest
		}
	}
	return ""
}

// IsExported reports whether the generated code can reference the function from another package.
func (m MemberDefinition) IsExported() bool {
	return token.IsExported(m.FuncName)
}

// scanFile collects the annotated members declared in a file of the package importPath.
func scanFile(logger *zerolog.Logger, file *ast.File, importPath string) []MemberDefinition {
	var definitions []MemberDefinition
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		logger := logger.With().Str("func", fn.Name.Name).Logger()

		var (
			definition MemberDefinition
			found      bool
		)
		if fn.Recv == nil {
			definition, found = scanConstructor(&logger, file, fn, importPath)
		} else {
			definition, found = scanMethod(&logger, file, fn, importPath)
		}
		if found {
			definitions = append(definitions, definition)
		}
	}
	return definitions
}

func scanConstructor(logger *zerolog.Logger, file *ast.File, fn *ast.FuncDecl, importPath string) (MemberDefinition, bool) {
	annotation, found := findAnnotation(logger, fn.Doc.Text(), constructorAnnotationTag)
	if !found {
		return MemberDefinition{}, false
	}
	if fn.Type.TypeParams != nil {
		logger.Warn().Msg("Generic constructors cannot be declared, skipping it")
		return MemberDefinition{}, false
	}
	results := fn.Type.Results
	if results == nil || len(results.List) == 0 {
		logger.Warn().Msg("Constructor does not return anything, skipping it")
		return MemberDefinition{}, false
	}
	target, err := resolveTypeRef(results.List[0].Type, file, importPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot resolve the constructed type, skipping it")
		return MemberDefinition{}, false
	}

	logger.Debug().Msg("=> Found constructor")
	return MemberDefinition{
		Kind:       constructorKind,
		Target:     target,
		FuncName:   fn.Name.Name,
		ImportPath: importPath,
		Inject:     annotation.Inject(),
		Visibility: annotation.Visibility(),
	}, true
}

func scanMethod(logger *zerolog.Logger, file *ast.File, fn *ast.FuncDecl, importPath string) (MemberDefinition, bool) {
	annotation, found := findAnnotation(logger, fn.Doc.Text(), injectAnnotationTag, propertyAnnotationTag)
	if !found {
		return MemberDefinition{}, false
	}
	target, err := resolveTypeRef(fn.Recv.List[0].Type, file, importPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot resolve the receiver type, skipping it")
		return MemberDefinition{}, false
	}

	definition := MemberDefinition{
		Kind:       methodKind,
		Target:     target,
		FuncName:   fn.Name.Name,
		ImportPath: importPath,
		Inject:     annotation.Inject(),
		Visibility: annotation.Visibility(),
	}
	if annotation.Tag == propertyAnnotationTag {
		definition.Kind = propertyKind
		if definition.PropertyName() == "" || fn.Type.Params.NumFields() != 1 {
			logger.Warn().Msg("Properties must be set by a SetName method taking one value, skipping it")
			return MemberDefinition{}, false
		}
	}

	logger.Debug().Msgf("=> Found %s", definition.Kind)
	return definition, true
}

// findRegistry looks for a struct embedding shifter.EmptyRegistry.
func findRegistry(logger *zerolog.Logger, file *ast.File, importPath string) *RegistryDefinition {
	var registry *RegistryDefinition
	ast.Inspect(file, func(n ast.Node) bool {
		typeSpec, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		structType, ok := typeSpec.Type.(*ast.StructType)
		if !ok {
			return true
		}
		for _, field := range structType.Fields.List {
			if len(field.Names) > 0 {
				continue
			}
			sel, ok := field.Type.(*ast.SelectorExpr)
			if !ok || sel.Sel.Name != "EmptyRegistry" {
				continue
			}
			if ident, ok := sel.X.(*ast.Ident); ok && findImportPathForAlias(file, ident.Name) == shifterImportPath {
				logger.Debug().Str("struct", typeSpec.Name.Name).Msg("=> Found Registry")
				registry = &RegistryDefinition{
					PackageName: file.Name.Name,
					ImportPath:  importPath,
					StructName:  typeSpec.Name.Name,
				}
				return false
			}
		}
		return true
	})
	return registry
}

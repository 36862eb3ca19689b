package main

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"
)

// TypeRef is a named type, possibly behind a pointer, as written in the generated code.
type TypeRef struct {
	ImportPath string // empty for predeclared types
	Name       string
	Pointer    bool
}

func (t TypeRef) String() string {
	name := t.Name
	if t.ImportPath != "" {
		name = t.ImportPath + "." + t.Name
	}
	if t.Pointer {
		return "*" + name
	}
	return name
}

// resolveTypeRef turns a type expression of a file of the package importPath into a TypeRef.
//
// Only named types and pointers to named types are supported, constructors returning
// slices, maps or funcs cannot be declared.
func resolveTypeRef(expr ast.Expr, file *ast.File, importPath string) (TypeRef, error) {
	var pointer bool
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer = true
		expr = star.X
	}
	if index, ok := expr.(*ast.IndexExpr); ok {
		return TypeRef{}, fmt.Errorf("generic type %s is not supported", formatType(index))
	}

	switch t := expr.(type) {
	case *ast.Ident:
		if types.Universe.Lookup(t.Name) != nil {
			return TypeRef{Name: t.Name, Pointer: pointer}, nil
		}
		return TypeRef{ImportPath: importPath, Name: t.Name, Pointer: pointer}, nil
	case *ast.SelectorExpr:
		alias, ok := t.X.(*ast.Ident)
		if !ok {
			return TypeRef{}, fmt.Errorf("unsupported type %s", formatType(t))
		}
		path := findImportPathForAlias(file, alias.Name)
		if path == "" {
			return TypeRef{}, fmt.Errorf("no import found for %s", alias.Name)
		}
		return TypeRef{ImportPath: path, Name: t.Sel.Name, Pointer: pointer}, nil
	}
	return TypeRef{}, fmt.Errorf("unsupported type %s", formatType(expr))
}

func findImportPathForAlias(file *ast.File, packageAlias string) string {
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		var alias string
		if imp.Name != nil {
			alias = imp.Name.Name
		} else {
			// default alias is the last part of the import path
			parts := strings.Split(importPath, "/")
			alias = parts[len(parts)-1]
		}

		if alias == packageAlias {
			return importPath
		}
	}
	return ""
}

func formatType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + formatType(t.X)
	case *ast.SelectorExpr:
		return formatType(t.X) + "." + t.Sel.Name
	case *ast.IndexExpr:
		return formatType(t.X) + "[" + formatType(t.Index) + "]"
	case *ast.ArrayType:
		return "[]" + formatType(t.Elt)
	case *ast.MapType:
		return "map[" + formatType(t.Key) + "]" + formatType(t.Value)
	case *ast.ChanType:
		return "chan " + formatType(t.Value)
	case *ast.FuncType:
		return "func"
	case *ast.InterfaceType:
		return "interface{}"
	default:
		return "unknown"
	}
}

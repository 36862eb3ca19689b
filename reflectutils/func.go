package reflectutils

import (
	"go/token"
	"reflect"
	"runtime"
	"strings"
)

// FuncName returns the fully qualified name of the function held by val, as reported by the runtime.
func FuncName(val reflect.Value) string {
	if val.Kind() != reflect.Func || val.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(val.Pointer())
	if f == nil {
		return ""
	}
	return f.Name()
}

// ShortFuncName extracts the identifier of a function or method from its qualified runtime name.
//
// "example.com/pkg.(*Worker).init-fm" gives "init", "example.com/pkg.NewWorker" gives "NewWorker".
// Anonymous functions give an empty name.
func ShortFuncName(qualified string) string {
	name := qualified
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "["); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSuffix(name, "-fm")

	tokens := strings.Split(name, ".")
	if len(tokens) < 2 {
		return ""
	}
	last := tokens[len(tokens)-1]
	if isAnonymous(last) {
		return ""
	}
	return last
}

// IsExportedFunc reports whether the function behind the qualified runtime name is exported.
// Anonymous functions are considered exported, they are only reachable through the value itself.
func IsExportedFunc(qualified string) bool {
	short := ShortFuncName(qualified)
	if short == "" {
		return true
	}
	return token.IsExported(short)
}

func isAnonymous(segment string) bool {
	digits := strings.TrimPrefix(segment, "func")
	if digits == "" {
		return segment != "func"
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

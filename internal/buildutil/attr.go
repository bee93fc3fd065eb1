// Package buildutil extracts argument values from buildtools call expressions.
//
// The helpers resolve identifiers bound by earlier top-level string assignments,
// so build descriptions can name a coordinate once and reuse it:
//
//	GUAVA = "com.google.guava:guava:23.0"
//	compile(GUAVA, transitivity = "none")
package buildutil

import (
	"slices"

	"github.com/bazelbuild/buildtools/build"
)

// Value is a bound string or list of strings.
type Value struct {
	Strings []string
	Scalar  bool // a single string rather than a list
}

// Vars holds top-level string bindings, by identifier.
type Vars map[string]Value

// Bind records the string values of an assignment "NAME = <strings>".
// It returns false when the statement is not such an assignment.
func (v Vars) Bind(expr build.Expr) bool {
	assign, ok := expr.(*build.AssignExpr)
	if !ok || assign.Op != "=" {
		return false
	}
	lhs, ok := assign.LHS.(*build.Ident)
	if !ok {
		return false
	}
	values, ok := v.Strings(assign.RHS)
	if !ok {
		return false
	}
	v[lhs.Name] = Value{Strings: values, Scalar: isScalar(assign.RHS, v)}
	return true
}

// Strings flattens a string literal, a list of strings, a bound identifier or a
// "+" concatenation of those into a list of values. ok is false when expr
// contains anything else.
func (v Vars) Strings(expr build.Expr) (values []string, ok bool) {
	switch e := expr.(type) {
	case *build.StringExpr:
		return []string{e.Value}, true
	case *build.ListExpr:
		for _, item := range e.List {
			vals, ok := v.Strings(item)
			if !ok {
				return nil, false
			}
			values = append(values, vals...)
		}
		return values, true
	case *build.Ident:
		bound, ok := v[e.Name]
		return slices.Clone(bound.Strings), ok
	case *build.BinaryExpr:
		if e.Op != "+" {
			return nil, false
		}
		left, ok := v.Strings(e.X)
		if !ok {
			return nil, false
		}
		right, ok := v.Strings(e.Y)
		if !ok {
			return nil, false
		}
		// "a" + "b" concatenates, lists append.
		if len(left) == 1 && len(right) == 1 && isScalar(e.X, v) && isScalar(e.Y, v) {
			return []string{left[0] + right[0]}, true
		}
		return slices.Concat(left, right), true
	}
	return nil, false
}

func isScalar(expr build.Expr, v Vars) bool {
	switch e := expr.(type) {
	case *build.StringExpr:
		return true
	case *build.BinaryExpr:
		return isScalar(e.X, v) && isScalar(e.Y, v)
	case *build.Ident:
		return v[e.Name].Scalar
	}
	return false
}

// Positional returns the positional (unnamed) arguments of a call.
func Positional(call *build.CallExpr) []build.Expr {
	var result []build.Expr
	for _, arg := range call.List {
		if _, ok := arg.(*build.AssignExpr); ok {
			continue
		}
		result = append(result, arg)
	}
	return result
}

// Keyword returns the value of the named argument, or nil if absent.
func Keyword(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		lhs, ok := assign.LHS.(*build.Ident)
		if ok && lhs.Name == name {
			return assign.RHS
		}
	}
	return nil
}

// KeywordNames returns the names of all named arguments in order.
func KeywordNames(call *build.CallExpr) []string {
	var names []string
	for _, arg := range call.List {
		if assign, ok := arg.(*build.AssignExpr); ok {
			if lhs, ok := assign.LHS.(*build.Ident); ok {
				names = append(names, lhs.Name)
			}
		}
	}
	return names
}

// StringArg extracts a string-valued named argument.
// Returns "" and false if the argument is missing or not a single string.
func (v Vars) StringArg(call *build.CallExpr, name string) (string, bool) {
	expr := Keyword(call, name)
	if expr == nil {
		return "", false
	}
	values, ok := v.Strings(expr)
	if !ok || len(values) != 1 || !isScalar(expr, v) {
		return "", false
	}
	return values[0], true
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

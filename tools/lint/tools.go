//go:build tools

// Package lint pins the linters run over go-depset. It is its own module so
// the library's go.mod only carries what depset and the depset command import.
//
//	make lint
//	make staticcheck
package lint

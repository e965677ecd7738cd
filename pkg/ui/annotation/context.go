package annotation

import "github.com/ryanoneill/envision-sub004/pkg/ui/backend"

// The render pass runs on a single goroutine, so the active registry
// is a package-level slot scoped by With. Widgets record through the
// package functions and stay oblivious to whether anyone is listening.
var current *Registry

// With installs a fresh registry, runs f, and returns the registry for
// queries. The previous registry is restored on every exit path,
// including a panic inside f.
func With(f func()) *Registry {
	reg := NewRegistry()
	prev := current
	current = reg
	defer func() { current = prev }()
	f()
	return reg
}

// Active returns the registry installed by the innermost With, or nil
// outside any scope.
func Active() *Registry {
	return current
}

// Record adds a leaf region to the active registry, if any.
func Record(rect backend.Rect, a Annotation) {
	if current != nil {
		current.Record(rect, a)
	}
}

// Open starts a container scope on the active registry, if any.
func Open(rect backend.Rect, a Annotation) {
	if current != nil {
		current.Open(rect, a)
	}
}

// Close ends the innermost container scope on the active registry.
func Close() {
	if current != nil {
		current.Close()
	}
}

/*
File    : gomixvm/domain/modules/modules.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package modules realizes the out-of-scope module registry (spec.md §1)
// behind the parsed-but-inert `import NAME` statement, grounded
// directly on the teacher's std/*.go RegisterPackage idiom: every
// std/*.go file builds a name -> *Package map of its own builtins and
// registers it in an init(). Here packages are added with Register (the
// driver registers none of the domain packages), and a single native,
// __import(name), is what
// `import` (compiler no-ops it, per spec.md §4.3) would reach if a
// program called it directly.
package modules

import (
	"fmt"

	"github.com/akashmaji946/gomixvm/value"
)

// Registry maps a module name to the native functions it contributes.
type Registry struct {
	packages map[string]map[string]value.NativeFn
	install  func(name string, fn value.NativeFn)
}

// NewRegistry returns an empty registry. install is called once per
// function the moment a package is imported, wiring it straight into the
// running VM's globals (the same place every other native lives).
func NewRegistry(install func(name string, fn value.NativeFn)) *Registry {
	return &Registry{packages: make(map[string]map[string]value.NativeFn), install: install}
}

// Register adds a named package of natives, following std/common.go's
// per-file RegisterPackage(name, Functions) call.
func (r *Registry) Register(name string, funcs map[string]value.NativeFn) {
	r.packages[name] = funcs
}

// Natives returns __import for registration.
func (r *Registry) Natives() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"__import": r.importModule,
	}
}

// importModule(name) merges the named package's natives into the VM's
// global natives, returning true if the package existed.
func (r *Registry) importModule(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil(), fmt.Errorf("__import expects 1 argument (name)")
	}
	name := args[0].AsString()
	funcs, ok := r.packages[name]
	if !ok {
		return value.Bool(false), nil
	}
	for fnName, fn := range funcs {
		r.install(fnName, fn)
	}
	return value.Bool(true), nil
}

package typelib

import (
	"reflect"
	"strings"
)

// Factory constructs type declarations and canonicalizes the ones that are
// safe to share: array types (one per component type) and simple class
// declarations (one per fully qualified name). Field and method
// declarations are always fresh, since their identity is tied to a specific
// containing class.
//
// A Factory is created once at process start, never torn down, and is safe
// for concurrent use; each cache is its own critical section.
type Factory struct {
	arrays  *cache[Type, *ArrayType]
	classes *cache[string, *ClassDeclaration]
}

// NewFactory returns a Factory with empty caches.
func NewFactory() *Factory {
	return &Factory{
		arrays:  newCache[Type, *ArrayType](),
		classes: newCache[string, *ClassDeclaration](),
	}
}

// ArrayOf returns the canonical array descriptor for the given component
// type, creating and caching it on first request.
func (f *Factory) ArrayOf(component Type) *ArrayType {
	return f.arrays.getOrCreate(component, func() (*ArrayType, bool) {
		return &ArrayType{comp: component}, true
	})
}

// Class returns a class declaration with the given shape. For simple source
// types the declaration is served from, and added to, the name-keyed cache.
// Generic source types are never cached: a single generic declaration is
// not a unique representative of all its instantiations, so every call
// produces a fresh instance.
func (f *Factory) Class(mods Modifier, name string,
	inheritance []*ClassDeclaration, methods []*MethodDeclaration,
	fields []*FieldDeclaration, src reflect.Type, immutable bool) *ClassDeclaration {

	fresh := func() (*ClassDeclaration, bool) {
		decl := &ClassDeclaration{
			mods:        mods,
			name:        name,
			inheritance: inheritance,
			methods:     methods,
			fields:      fields,
			src:         src,
			simple:      !isParameterized(src),
			immutable:   immutable,
		}
		return decl, decl.simple
	}

	if isParameterized(src) {
		decl, _ := fresh()
		return decl
	}
	return f.classes.getOrCreate(name, fresh)
}

// SimpleClass is shorthand for Class with empty inheritance, method, and
// field lists.
func (f *Factory) SimpleClass(mods Modifier, name string, src reflect.Type,
	immutable bool) *ClassDeclaration {
	return f.Class(mods, name, nil, nil, nil, src, immutable)
}

// Field returns a fresh field declaration.
func (f *Factory) Field(container *ClassDeclaration, mods Modifier,
	ftype Type, name string, field *reflect.StructField) *FieldDeclaration {
	return &FieldDeclaration{
		container: container,
		mods:      mods,
		ftype:     ftype,
		name:      name,
		field:     field,
	}
}

// Method returns a fresh method declaration.
func (f *Factory) Method(container *ClassDeclaration, mods Modifier,
	rtype Type, name string, ptypes []Type, method *reflect.Method) *MethodDeclaration {
	return &MethodDeclaration{
		container: container,
		mods:      mods,
		rtype:     rtype,
		name:      name,
		ptypes:    ptypes,
		method:    method,
	}
}

// isParameterized reports whether t is an instantiated generic type. Such
// types carry their type arguments in the name (e.g. "Pair[int,string]"),
// so the bare name does not uniquely identify the declaration.
func isParameterized(t reflect.Type) bool {
	return t != nil && strings.ContainsRune(t.Name(), '[')
}

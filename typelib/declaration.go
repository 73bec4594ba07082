package typelib

import (
	"fmt"
	"reflect"
	"slices"
)

// ArrayType is the canonical descriptor for an array of some component
// type. Obtain instances from Factory.ArrayOf; there is exactly one per
// distinct component type per factory.
type ArrayType struct {
	comp Type
}

// ComponentType returns the element type of the array.
func (a *ArrayType) ComponentType() Type { return a.comp }

// Name returns the component type's name suffixed with "[]".
func (a *ArrayType) Name() string { return a.comp.Name() + "[]" }

// ClassDeclaration describes the shape of a class: its inheritance chain,
// methods, fields, and generic instantiations. The owning introspector
// replaces those lists wholesale while it evaluates the class, then calls
// Freeze; a frozen declaration is immutable and mutating it panics.
type ClassDeclaration struct {
	mods           Modifier
	name           string
	inheritance    []*ClassDeclaration
	methods        []*MethodDeclaration
	fields         []*FieldDeclaration
	instantiations []Type
	src            reflect.Type
	// simple records that src carries no generic instantiation, so this
	// declaration is the unique representative of its name and cacheable.
	simple    bool
	frozen    bool
	immutable bool
}

// Name returns the fully qualified class name.
func (c *ClassDeclaration) Name() string { return c.name }

// Modifiers returns the declaration modifiers.
func (c *ClassDeclaration) Modifiers() Modifier { return c.mods }

// ReflectType returns the source type this declaration was evaluated from,
// or nil for hand-constructed declarations.
func (c *ClassDeclaration) ReflectType() reflect.Type { return c.src }

// SimpleClass reports whether this declaration is cacheable: its source
// type is not a generic instantiation, so the name uniquely identifies it.
func (c *ClassDeclaration) SimpleClass() bool { return c.simple }

// IsImmutable reports whether instances of the described class are
// immutable value objects.
func (c *ClassDeclaration) IsImmutable() bool { return c.immutable }

// Frozen reports whether Freeze has been called.
func (c *ClassDeclaration) Frozen() bool { return c.frozen }

// Freeze makes the declaration immutable. The transition is one-way.
func (c *ClassDeclaration) Freeze() { c.frozen = true }

// Inheritance returns the declared superclasses and interfaces.
func (c *ClassDeclaration) Inheritance() []*ClassDeclaration { return slices.Clone(c.inheritance) }

// Methods returns the declared methods.
func (c *ClassDeclaration) Methods() []*MethodDeclaration { return slices.Clone(c.methods) }

// Fields returns the declared fields.
func (c *ClassDeclaration) Fields() []*FieldDeclaration { return slices.Clone(c.fields) }

// Instantiations returns the type arguments this generic class was
// instantiated with, empty for simple classes.
func (c *ClassDeclaration) Instantiations() []Type { return slices.Clone(c.instantiations) }

// SetInheritance replaces the inheritance list. Panics if frozen.
func (c *ClassDeclaration) SetInheritance(inh []*ClassDeclaration) {
	c.checkFrozen()
	c.inheritance = inh
}

// SetMethods replaces the method list. Panics if frozen.
func (c *ClassDeclaration) SetMethods(methods []*MethodDeclaration) {
	c.checkFrozen()
	c.methods = methods
}

// SetFields replaces the field list. Panics if frozen.
func (c *ClassDeclaration) SetFields(fields []*FieldDeclaration) {
	c.checkFrozen()
	c.fields = fields
}

// SetInstantiations replaces the instantiation list. Panics if frozen or if
// the class is simple: a class without type parameters has nothing to
// instantiate.
func (c *ClassDeclaration) SetInstantiations(args []Type) {
	c.checkFrozen()
	if c.simple {
		panic(fmt.Sprintf("typelib: cannot add instantiations to simple class %s", c.name))
	}
	c.instantiations = args
}

func (c *ClassDeclaration) checkFrozen() {
	if c.frozen {
		panic(fmt.Sprintf("typelib: cannot modify frozen declaration %s", c.name))
	}
}

// FieldDeclaration describes one field of a containing class. Field
// identity is tied to that class instance, so field declarations are never
// cached or shared.
type FieldDeclaration struct {
	container *ClassDeclaration
	mods      Modifier
	ftype     Type
	name      string
	field     *reflect.StructField
}

// Name returns the field name.
func (f *FieldDeclaration) Name() string { return f.name }

// Modifiers returns the field modifiers.
func (f *FieldDeclaration) Modifiers() Modifier { return f.mods }

// FieldType returns the declared type of the field.
func (f *FieldDeclaration) FieldType() Type { return f.ftype }

// ContainingClass returns the class that declares this field.
func (f *FieldDeclaration) ContainingClass() *ClassDeclaration { return f.container }

// StructField returns the reflected field this declaration was evaluated
// from, or nil for hand-constructed declarations.
func (f *FieldDeclaration) StructField() *reflect.StructField { return f.field }

// MethodDeclaration describes one method of a containing class. Like
// fields, method declarations are never cached or shared.
type MethodDeclaration struct {
	container *ClassDeclaration
	mods      Modifier
	rtype     Type
	name      string
	ptypes    []Type
	method    *reflect.Method
}

// Name returns the method name.
func (m *MethodDeclaration) Name() string { return m.name }

// Modifiers returns the method modifiers.
func (m *MethodDeclaration) Modifiers() Modifier { return m.mods }

// ReturnType returns the declared return type.
func (m *MethodDeclaration) ReturnType() Type { return m.rtype }

// ParameterTypes returns the declared parameter types.
func (m *MethodDeclaration) ParameterTypes() []Type { return slices.Clone(m.ptypes) }

// ContainingClass returns the class that declares this method.
func (m *MethodDeclaration) ContainingClass() *ClassDeclaration { return m.container }

// Method returns the reflected method this declaration was evaluated from,
// or nil for hand-constructed declarations.
func (m *MethodDeclaration) Method() *reflect.Method { return m.method }

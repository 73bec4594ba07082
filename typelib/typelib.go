// Package typelib builds shared, comparable type declarations describing the
// shapes of managed objects. Declarations come from a Factory, which
// canonicalizes them: structurally identical array types and non-generic
// class declarations compare equal because they are the same instance.
package typelib

// Type is implemented by every descriptor a Factory produces. Descriptors
// are pointer-shaped so canonical instances compare equal by identity.
type Type interface {
	// Name returns the fully qualified name of the type, e.g.
	// "com.example.Foo" or "com.example.Foo[]".
	Name() string
}

// Modifier is a bitmask of declaration modifiers.
type Modifier uint32

// Declaration modifiers.
const (
	ModifierPublic Modifier = 1 << iota
	ModifierPrivate
	ModifierProtected
	ModifierStatic
	ModifierFinal
	ModifierAbstract
)

// Has reports whether all bits of flag are set.
func (m Modifier) Has(flag Modifier) bool { return m&flag == flag }

package typelib

import (
	"reflect"
	"sync"
	"testing"
)

type widget struct {
	ID   int
	Name string
}

type gadget struct{}

type pair[A, B any] struct {
	First  A
	Second B
}

func TestArrayOfIsCanonical(t *testing.T) {
	f := NewFactory()
	comp := f.SimpleClass(ModifierPublic, "com.example.Widget",
		reflect.TypeOf(widget{}), false)

	a1 := f.ArrayOf(comp)
	a2 := f.ArrayOf(comp)
	if a1 != a2 {
		t.Error("same component type must yield the identical array instance")
	}
	if a1.Name() != "com.example.Widget[]" {
		t.Errorf("got %q, want %q", a1.Name(), "com.example.Widget[]")
	}
	if a1.ComponentType() != comp {
		t.Error("component type should round-trip")
	}

	other := f.SimpleClass(ModifierPublic, "com.example.Gadget",
		reflect.TypeOf(gadget{}), false)
	if f.ArrayOf(other) == a1 {
		t.Error("distinct component types must yield distinct array instances")
	}
}

func TestArrayOfArray(t *testing.T) {
	f := NewFactory()
	comp := f.SimpleClass(ModifierPublic, "com.example.Widget",
		reflect.TypeOf(widget{}), false)

	aa := f.ArrayOf(f.ArrayOf(comp))
	if aa.Name() != "com.example.Widget[][]" {
		t.Errorf("got %q", aa.Name())
	}
	if aa != f.ArrayOf(f.ArrayOf(comp)) {
		t.Error("nested array types must be canonical too")
	}
}

func TestSimpleClassIsCached(t *testing.T) {
	f := NewFactory()
	c1 := f.SimpleClass(ModifierPublic, "com.example.Foo", reflect.TypeOf(widget{}), false)
	c2 := f.SimpleClass(ModifierPublic, "com.example.Foo", reflect.TypeOf(widget{}), false)
	if c1 != c2 {
		t.Error("non-generic class must be served from the cache by name")
	}
	if !c1.SimpleClass() {
		t.Error("widget is not parameterized, declaration should be simple")
	}
}

func TestHandConstructedClassIsCached(t *testing.T) {
	// A nil source type means a hand-constructed declaration; there is only
	// one form of it, so it is cacheable.
	f := NewFactory()
	c1 := f.SimpleClass(ModifierPublic, "com.example.Synthetic", nil, true)
	c2 := f.SimpleClass(ModifierPublic, "com.example.Synthetic", nil, true)
	if c1 != c2 {
		t.Error("hand-constructed declarations are cached by name")
	}
	if !c1.IsImmutable() {
		t.Error("immutable flag should round-trip")
	}
}

func TestGenericClassIsNeverCached(t *testing.T) {
	f := NewFactory()
	src := reflect.TypeOf(pair[int, string]{})
	c1 := f.SimpleClass(ModifierPublic, "com.example.Pair", src, false)
	c2 := f.SimpleClass(ModifierPublic, "com.example.Pair", src, false)
	if c1 == c2 {
		t.Error("generic instantiations must produce fresh declarations per call")
	}
	if c1.SimpleClass() {
		t.Error("instantiated generic must not be simple")
	}

	// And it must not poison the name cache for later calls.
	plain := f.SimpleClass(ModifierPublic, "com.example.Pair", reflect.TypeOf(widget{}), false)
	if plain == c1 || plain == c2 {
		t.Error("cache must not have been populated by the generic calls")
	}
}

func TestFieldAndMethodAlwaysFresh(t *testing.T) {
	f := NewFactory()
	owner := f.SimpleClass(ModifierPublic, "com.example.Foo", reflect.TypeOf(widget{}), false)
	ftype := f.SimpleClass(ModifierPublic, "com.example.Bar", reflect.TypeOf(gadget{}), false)

	f1 := f.Field(owner, ModifierPrivate, ftype, "bar", nil)
	f2 := f.Field(owner, ModifierPrivate, ftype, "bar", nil)
	if f1 == f2 {
		t.Error("field declarations are never shared")
	}
	if f1.ContainingClass() != owner || f1.FieldType() != ftype || f1.Name() != "bar" {
		t.Error("field declaration should carry its construction arguments")
	}

	m1 := f.Method(owner, ModifierPublic, ftype, "getBar", nil, nil)
	m2 := f.Method(owner, ModifierPublic, ftype, "getBar", nil, nil)
	if m1 == m2 {
		t.Error("method declarations are never shared")
	}
	if m1.ReturnType() != ftype || m1.ContainingClass() != owner {
		t.Error("method declaration should carry its construction arguments")
	}
}

func TestFactoriesAreIndependent(t *testing.T) {
	src := reflect.TypeOf(widget{})
	f1 := NewFactory()
	f2 := NewFactory()
	if f1.SimpleClass(0, "com.example.Foo", src, false) ==
		f2.SimpleClass(0, "com.example.Foo", src, false) {
		t.Error("caches belong to the factory instance, not the process")
	}
}

// TestFactoryConcurrency verifies that concurrent construction converges on
// the same canonical instances.
func TestFactoryConcurrency(t *testing.T) {
	f := NewFactory()
	comp := f.SimpleClass(ModifierPublic, "com.example.Widget", reflect.TypeOf(widget{}), false)

	const goroutines = 16
	arrays := make([]*ArrayType, goroutines)
	classes := make([]*ClassDeclaration, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			arrays[i] = f.ArrayOf(comp)
			classes[i] = f.SimpleClass(ModifierPublic, "com.example.Shared",
				reflect.TypeOf(gadget{}), false)
		}()
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if arrays[i] != arrays[0] {
			t.Fatal("concurrent ArrayOf diverged")
		}
		if classes[i] != classes[0] {
			t.Fatal("concurrent Class diverged")
		}
	}
}

func TestIsParameterized(t *testing.T) {
	if isParameterized(nil) {
		t.Error("nil source type is not parameterized")
	}
	if isParameterized(reflect.TypeOf(widget{})) {
		t.Error("plain struct is not parameterized")
	}
	if !isParameterized(reflect.TypeOf(pair[int, int]{})) {
		t.Error("generic instantiation is parameterized")
	}
	// Unnamed types have no name to carry arguments in.
	if isParameterized(reflect.TypeOf([]int{})) {
		t.Error("slice types are unnamed, not parameterized")
	}
}

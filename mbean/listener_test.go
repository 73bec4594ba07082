package mbean_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/golangsnmp/gombal/internal/testutil"
	"github.com/golangsnmp/gombal/mbean"
)

// buildGatedTree constructs a gated manager with the tree
//
//	root
//	  └── a
//	        └── b
//
// and sets the root while the parent is still absent.
func buildGatedTree(t *testing.T) (*mbean.RegistrationManager, *testutil.Watcher, *testutil.Server) {
	t.Helper()
	srv := testutil.NewServer()
	m, w := newGatedManager()

	root := testutil.NewBean(srv, "root")
	a := testutil.NewBean(srv, "a")
	b := testutil.NewBean(srv, "b")
	root.AddChild("child", a)
	a.AddChild("child", b)

	testutil.NoError(t, m.SetRoot(root))
	testutil.False(t, m.Enabled(), "gated manager starts disabled")
	testutil.Equal(t, 1, w.Current().Started(), "subscription should be listening")
	return m, w, srv
}

func TestParentAppearRegistersPreOrder(t *testing.T) {
	m, w, srv := buildGatedTree(t)

	w.Appear()

	testutil.True(t, m.Enabled())
	want := []string{"register:root", "register:a", "register:b"}
	if got := srv.Ops(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParentDisappearUnregistersPostOrder(t *testing.T) {
	m, w, srv := buildGatedTree(t)

	w.Appear()
	w.Disappear()

	testutil.False(t, m.Enabled())
	want := []string{
		"register:root", "register:a", "register:b",
		"unregister:b", "unregister:a", "unregister:root",
	}
	if got := srv.Ops(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAppearIsIdempotent(t *testing.T) {
	_, w, srv := buildGatedTree(t)

	w.Appear()
	w.Appear()

	testutil.Len(t, srv.Ops(), 3, "second appearance must not re-register the tree")
}

func TestDisappearWhileDisabledIsNoop(t *testing.T) {
	_, w, srv := buildGatedTree(t)

	w.Disappear()
	testutil.Len(t, srv.Ops(), 0)
}

func TestTraversalSkipsSuspendedNodes(t *testing.T) {
	srv := testutil.NewServer()
	m, w := newGatedManager()

	root := testutil.NewBean(srv, "root")
	c := testutil.NewBean(srv, "c")
	root.AddChild("child", c)
	testutil.NoError(t, m.SetRoot(root))

	m.SuspendRegistration()
	testutil.NoError(t, m.Register(c))

	w.Appear()
	want := []string{"register:root"}
	if got := srv.Ops(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// The queued child is handled by resume, not by the traversal.
	m.ResumeRegistration()
	testutil.True(t, srv.Registered("c"))
	testutil.False(t, c.Suspended())
}

func TestSetRootWhileSuspendedQueuesRoot(t *testing.T) {
	srv := testutil.NewServer()
	m, w := newGatedManager()
	root := testutil.NewBean(srv, "root")

	m.SuspendRegistration()
	testutil.NoError(t, m.SetRoot(root))

	testutil.True(t, root.Suspended(), "root should be queued while suspended")
	testutil.Equal(t, 1, m.DeferredCount())

	w.Appear()
	testutil.Len(t, srv.Ops(), 0, "suspended root is skipped by the traversal")

	m.ResumeRegistration()
	testutil.True(t, srv.Registered("root"))
}

func TestSetRootReplacesSubscription(t *testing.T) {
	srv := testutil.NewServer()
	m, w := newGatedManager()

	testutil.NoError(t, m.SetRoot(testutil.NewBean(srv, "root")))
	testutil.NoError(t, m.SetRoot(testutil.NewBean(srv, "root2")))

	subs := w.Subscriptions()
	testutil.Len(t, subs, 2)
	testutil.Equal(t, 1, subs[0].Stopped(), "previous subscription should be stopped")
	testutil.Equal(t, 1, subs[1].Started())
	testutil.Equal(t, 0, subs[1].Stopped())
}

func TestTraversalFailureContinues(t *testing.T) {
	srv := testutil.NewServer()
	m, w := newGatedManager()

	root := testutil.NewBean(srv, "root")
	a := testutil.NewBean(srv, "a")
	root.AddChild("child", a)
	testutil.NoError(t, m.SetRoot(root))

	boom := errors.New("name collision")
	srv.FailWith("root", boom)

	w.Appear()

	testutil.True(t, srv.Registered("a"), "traversal must continue past the failure")
	diags := m.Diagnostics()
	testutil.Len(t, diags, 1)
	testutil.Equal(t, mbean.CodeTreeRegistrationFailed, diags[0].Code)
	testutil.Equal(t, mbean.ObjectName("root"), diags[0].Object)

	// Same policy on the way down.
	w.Disappear()
	diags = m.Diagnostics()
	testutil.Len(t, diags, 2)
	testutil.Equal(t, mbean.CodeTreeUnregistrationFailed, diags[1].Code)
	testutil.False(t, srv.Registered("a"))
}

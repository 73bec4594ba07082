// Package gombal exposes trees of managed objects to an external management
// server whose availability is not guaranteed at startup. Registration can
// be suspended and resumed as a counted gate, and optionally deferred until
// a named root parent object appears on the server.
package gombal

import (
	"log/slog"

	"github.com/golangsnmp/gombal/mbean"
	"github.com/golangsnmp/gombal/typelib"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-object logging during queue flushes and tree traversals.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = mbean.LevelTrace

// Option configures NewManager.
type Option func(*mbean.ManagerConfig)

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *mbean.ManagerConfig) { c.Logger = logger }
}

// WithRootParent gates all registration on the presence of the named server
// object. The manager registers the tree when the parent appears and
// unregisters it when the parent disappears. Requires WithWatcher.
func WithRootParent(name ObjectName) Option {
	return func(c *mbean.ManagerConfig) { c.RootParent = name }
}

// WithWatcher sets the watcher used to subscribe to the root parent's
// lifecycle. Ignored unless WithRootParent is also given.
func WithWatcher(w Watcher) Option {
	return func(c *mbean.ManagerConfig) { c.Watcher = w }
}

// WithDiagnosticHandler forwards every diagnostic the manager records to fn.
// fn runs with the manager's lock held and must not call back into the
// manager.
func WithDiagnosticHandler(fn func(Diagnostic)) Option {
	return func(c *mbean.ManagerConfig) { c.OnDiagnostic = fn }
}

// NewManager returns a RegistrationManager for one tree of managed objects.
//
// Example:
//
//	mgr := gombal.NewManager(
//	    gombal.WithRootParent("amx:type=domain-root"),
//	    gombal.WithWatcher(conn),
//	    gombal.WithLogger(slog.Default()),
//	)
//	if err := mgr.SetRoot(root); err != nil { ... }
func NewManager(opts ...Option) *RegistrationManager {
	var cfg mbean.ManagerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return mbean.NewRegistrationManager(cfg)
}

// NewTypeFactory returns a factory for canonicalized type declarations.
// Create one per process and pass it explicitly to every consumer; the
// caches it owns are its only state.
func NewTypeFactory() *typelib.Factory {
	return typelib.NewFactory()
}

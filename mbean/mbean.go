// Package mbean implements deferred, hierarchical registration of managed
// objects against an external management server. A RegistrationManager owns
// the registration state machine: registrations can be suspended and resumed
// as a counted gate, queued decisions are replayed in order on resume, and an
// optional root-parent presence subscription gates the visibility of the
// whole tree.
package mbean

import "errors"

// ErrNoWatcher is returned by SetRoot when a root parent is configured but
// no Watcher was provided to create the presence subscription.
var ErrNoWatcher = errors.New("mbean: root parent configured without a watcher")

// ObjectName identifies an object on the external management server.
// It is a defined type (not alias) so collaborator contracts are explicit
// about which strings name server objects.
type ObjectName string

// ManagedObject is a node in the management tree. Implementations are
// expected to be pointer-shaped: the manager stores ManagedObject values in
// maps and compares them by interface identity.
//
// Register and Unregister talk to the external management server and may
// fail with server errors (name collision, non-compliant shape, not-found).
// Unregister of an object unknown to the server must be a no-op, not an
// error. Neither call may re-enter the RegistrationManager; doing so
// deadlocks on the manager's lock.
type ManagedObject interface {
	// Name returns the external identifier of this object.
	Name() ObjectName

	// Register exposes the object on the external server.
	Register() error

	// Unregister removes the object from the external server.
	Unregister() error

	// Suspended reports whether this object's registration decision is
	// queued pending a resume.
	Suspended() bool

	// SetSuspended marks or unmarks the object as queued. Only the
	// RegistrationManager calls this.
	SetSuspended(bool)

	// Children returns the child mapping, keyed first by attribute name and
	// then by object name. The returned maps define the traversal structure
	// of the tree; the manager walks them in sorted key order.
	Children() map[string]map[string]ManagedObject
}

// PresenceSubscription is an active subscription to lifecycle notifications
// for a named server object.
type PresenceSubscription interface {
	StartListening()
	StopListening()
}

// PresenceCallback receives lifecycle notifications for the watched object.
// Delivery is serialized per subscription: callbacks for the same
// subscription never overlap, and they are never invoked synchronously from
// StartListening (the manager holds its lock across that call).
type PresenceCallback interface {
	// ObjectAppeared is invoked when the watched object is registered on
	// the server.
	ObjectAppeared(name ObjectName, sub PresenceSubscription)

	// ObjectDisappeared is invoked when the watched object is unregistered
	// from the server.
	ObjectDisappeared(name ObjectName, sub PresenceSubscription)
}

// Watcher creates presence subscriptions for named server objects.
type Watcher interface {
	Watch(name ObjectName, cb PresenceCallback) PresenceSubscription
}

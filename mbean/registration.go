package mbean

import (
	"context"
	"log/slog"
	"sync"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-object logging during queue flushes and tree traversals.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// ManagerConfig configures a RegistrationManager.
type ManagerConfig struct {
	// RootParent names the external object whose presence gates all
	// registration. Empty means registration is enabled as soon as the root
	// is set.
	RootParent ObjectName

	// Watcher creates the presence subscription for RootParent. Required
	// when RootParent is set, ignored otherwise.
	Watcher Watcher

	// Logger receives debug/trace output. Nil means no logging.
	Logger *slog.Logger

	// OnDiagnostic, if set, is invoked for every diagnostic the manager
	// records. Called with the manager's lock held; it must not call back
	// into the manager.
	OnDiagnostic func(Diagnostic)
}

// RegistrationManager decides, for every managed object in one tree, whether
// its registration with the external server happens immediately, is queued,
// or is skipped. Decisions depend on two gates: a counted suspension
// (SuspendRegistration/ResumeRegistration) and an enablement flag driven by
// the configured root parent's presence.
//
// All methods are safe for concurrent use. A single mutex serializes every
// state transition, so reads of the enablement flag and the external calls
// they gate are atomic with respect to each other.
type RegistrationManager struct {
	mu sync.Mutex

	suspendCount int

	// Insertion-ordered set of objects whose registration decision is
	// pending resume. An object is queued here iff its Suspended flag is
	// set.
	deferred    []ManagedObject
	deferredSet map[ManagedObject]struct{}

	root    ManagedObject
	enabled bool

	rootParentName ObjectName
	watcher        Watcher
	sub            PresenceSubscription

	logger       *slog.Logger
	diagnostics  []Diagnostic
	onDiagnostic func(Diagnostic)
}

// NewRegistrationManager returns a manager with no root set. SetRoot must be
// called before any registration activity; the manager does not enforce
// this.
func NewRegistrationManager(cfg ManagerConfig) *RegistrationManager {
	return &RegistrationManager{
		deferredSet:    make(map[ManagedObject]struct{}),
		rootParentName: cfg.RootParent,
		watcher:        cfg.Watcher,
		logger:         cfg.Logger,
		onDiagnostic:   cfg.OnDiagnostic,
	}
}

// SetRoot establishes the root of the management tree.
//
// Without a configured root parent, registration is enabled immediately and
// the root is registered synchronously; any server error propagates to the
// caller. If registration is currently suspended the root is queued instead
// and reaches the server on resume.
//
// With a root parent, the root is queued if currently suspended, and a
// presence subscription is installed (replacing any previous one, so at most
// one subscription is ever active). The subscription then registers the tree
// once the parent appears.
func (m *RegistrationManager) SetRoot(root ManagedObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = root

	if m.rootParentName == "" {
		m.enabled = true
		if m.suspendCount > 0 {
			m.enqueue(root)
			m.log(slog.LevelDebug, "registration enabled, root deferred",
				slog.String("root", string(root.Name())))
			return nil
		}
		m.log(slog.LevelDebug, "registration enabled, registering root",
			slog.String("root", string(root.Name())))
		return root.Register()
	}

	if m.watcher == nil {
		return ErrNoWatcher
	}

	// The suspended case is handled here; the non-suspended case is handled
	// by the listener once the parent appears.
	if m.suspendCount > 0 {
		m.enqueue(root)
	}

	if m.sub != nil {
		m.sub.StopListening()
	}
	m.sub = m.watcher.Watch(m.rootParentName, &rootParentListener{m: m})
	m.sub.StartListening()
	m.log(slog.LevelDebug, "watching root parent",
		slog.String("parent", string(m.rootParentName)))
	return nil
}

// Clear reverses SetRoot: it drops the root reference, disables
// registration, and tears down any active presence subscription. The
// deferred queue and the suspend count are left untouched.
func (m *RegistrationManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = nil
	m.enabled = false

	if m.sub != nil {
		m.sub.StopListening()
		m.sub = nil
	}
}

// SuspendRegistration increments the suspension count. While the count is
// above zero no object changes its externally visible registration state.
func (m *RegistrationManager) SuspendRegistration() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.suspendCount++
}

// ResumeRegistration decrements the suspension count. On the transition to
// zero, every queued object is processed in insertion order: registered with
// the server if registration is enabled, then unmarked as suspended. A
// failed registration is recorded as a diagnostic and does not stop the
// flush; the failed entry is still unmarked and dropped, never re-queued.
//
// Calling ResumeRegistration without a matching SuspendRegistration is a
// caller pairing bug and panics.
func (m *RegistrationManager) ResumeRegistration() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.suspendCount == 0 {
		panic("mbean: ResumeRegistration without matching SuspendRegistration")
	}
	m.suspendCount--
	if m.suspendCount > 0 {
		return
	}

	m.log(slog.LevelDebug, "resuming registration",
		slog.Int("deferred", len(m.deferred)),
		slog.Bool("enabled", m.enabled))

	for _, mb := range m.deferred {
		if m.enabled {
			if err := mb.Register(); err != nil {
				m.report(Diagnostic{
					Severity: SeverityError,
					Code:     CodeDeferredRegistrationFailed,
					Message:  "deferred registration failed",
					Object:   mb.Name(),
					Err:      err,
				})
			} else if m.traceEnabled() {
				m.log(LevelTrace, "registered deferred object",
					slog.String("object", string(mb.Name())))
			}
		}
		mb.SetSuspended(false)
		delete(m.deferredSet, mb)
	}
	m.deferred = nil
}

// Register handles registration of mb. While suspended, mb is queued (at
// most once) and marked suspended. Otherwise mb is registered immediately if
// registration is enabled; a disabled manager leaves mb untouched (neither
// queued nor suspended), since the whole tree is registered once the root
// parent appears.
func (m *RegistrationManager) Register(mb ManagedObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.suspendCount > 0 {
		m.enqueue(mb)
		return nil
	}
	if m.enabled {
		return mb.Register()
	}
	return nil
}

// Unregister handles unregistration of mb. A suspended mb is removed from
// the queue and unmarked, cancelling its pending registration without ever
// touching the server. Otherwise mb is unregistered from the server if
// registration is enabled; the server tolerates unregistration of unknown
// objects as a no-op.
func (m *RegistrationManager) Unregister(mb ManagedObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mb.Suspended() {
		m.dequeue(mb)
		mb.SetSuspended(false)
		return nil
	}
	if m.enabled {
		return mb.Unregister()
	}
	return nil
}

// Enabled reports whether the external server currently accepts
// registrations from this manager.
func (m *RegistrationManager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SuspendCount returns the current suspension nesting depth.
func (m *RegistrationManager) SuspendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suspendCount
}

// DeferredCount returns the number of objects queued pending resume.
func (m *RegistrationManager) DeferredCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deferred)
}

// Diagnostics returns all diagnostics recorded so far.
func (m *RegistrationManager) Diagnostics() []Diagnostic {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Diagnostic, len(m.diagnostics))
	copy(out, m.diagnostics)
	return out
}

// enqueue adds mb to the deferred set (insertion order, no duplicates) and
// marks it suspended. Caller holds m.mu.
func (m *RegistrationManager) enqueue(mb ManagedObject) {
	if _, ok := m.deferredSet[mb]; !ok {
		m.deferred = append(m.deferred, mb)
		m.deferredSet[mb] = struct{}{}
	}
	mb.SetSuspended(true)
}

// dequeue removes mb from the deferred set. Caller holds m.mu.
func (m *RegistrationManager) dequeue(mb ManagedObject) {
	if _, ok := m.deferredSet[mb]; !ok {
		return
	}
	delete(m.deferredSet, mb)
	for i, queued := range m.deferred {
		if queued == mb {
			m.deferred = append(m.deferred[:i], m.deferred[i+1:]...)
			break
		}
	}
}

// report records a diagnostic and forwards it to the configured handler.
// Caller holds m.mu.
func (m *RegistrationManager) report(d Diagnostic) {
	m.diagnostics = append(m.diagnostics, d)
	m.log(slog.LevelWarn, d.Message,
		slog.String("object", string(d.Object)),
		slog.String("code", d.Code),
		slog.Any("err", d.Err))
	if m.onDiagnostic != nil {
		m.onDiagnostic(d)
	}
}

func (m *RegistrationManager) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if m.logger == nil {
		return
	}
	m.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (m *RegistrationManager) traceEnabled() bool {
	return m.logger != nil && m.logger.Enabled(context.Background(), LevelTrace)
}

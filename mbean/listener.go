package mbean

import "log/slog"

// rootParentListener reacts to the root parent's lifecycle. When the parent
// appears, registration is enabled and the whole current tree is registered
// top-down; a child must not register before its parent exists on the
// server. When the parent disappears, registration is disabled and the tree
// is unregistered bottom-up; a parent must not vanish while children are
// still registered under it. Suspended nodes are skipped in both directions:
// they stay queued and are handled by ResumeRegistration.
//
// Per-node failures are recorded as diagnostics and do not stop the
// traversal, matching the queue-flush policy.
type rootParentListener struct {
	m *RegistrationManager
}

func (l *rootParentListener) ObjectAppeared(name ObjectName, _ PresenceSubscription) {
	m := l.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.enabled {
		return
	}
	m.enabled = true
	m.log(slog.LevelDebug, "root parent appeared, registering tree",
		slog.String("parent", string(name)))

	if m.root == nil {
		return
	}
	walk(m.root, func(mb ManagedObject) {
		if mb.Suspended() {
			return
		}
		if err := mb.Register(); err != nil {
			m.report(Diagnostic{
				Severity: SeverityError,
				Code:     CodeTreeRegistrationFailed,
				Message:  "registration during parent appearance failed",
				Object:   mb.Name(),
				Err:      err,
			})
		} else if m.traceEnabled() {
			m.log(LevelTrace, "registered object",
				slog.String("object", string(mb.Name())))
		}
	}, nil)
}

func (l *rootParentListener) ObjectDisappeared(name ObjectName, _ PresenceSubscription) {
	m := l.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}
	m.enabled = false
	m.log(slog.LevelDebug, "root parent disappeared, unregistering tree",
		slog.String("parent", string(name)))

	if m.root == nil {
		return
	}
	walk(m.root, nil, func(mb ManagedObject) {
		if mb.Suspended() {
			return
		}
		if err := mb.Unregister(); err != nil {
			m.report(Diagnostic{
				Severity: SeverityError,
				Code:     CodeTreeUnregistrationFailed,
				Message:  "unregistration during parent disappearance failed",
				Object:   mb.Name(),
				Err:      err,
			})
		} else if m.traceEnabled() {
			m.log(LevelTrace, "unregistered object",
				slog.String("object", string(mb.Name())))
		}
	})
}

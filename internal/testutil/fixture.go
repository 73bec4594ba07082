package testutil

import (
	"sync"

	"github.com/golangsnmp/gombal/mbean"
)

// Server is a fake management server that records register/unregister calls
// in order and can be told to fail specific objects.
type Server struct {
	mu       sync.Mutex
	ops      []string
	failures map[mbean.ObjectName]error
}

// NewServer returns an empty fake server.
func NewServer() *Server {
	return &Server{failures: make(map[mbean.ObjectName]error)}
}

// FailWith makes every register/unregister call for name return err.
func (s *Server) FailWith(name mbean.ObjectName, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[name] = err
}

// Ops returns the recorded operations, e.g. "register:root".
func (s *Server) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ops))
	copy(out, s.ops)
	return out
}

// Registered reports whether name was registered more recently than it was
// unregistered.
func (s *Server) Registered(name mbean.ObjectName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	registered := false
	for _, op := range s.ops {
		switch op {
		case "register:" + string(name):
			registered = true
		case "unregister:" + string(name):
			registered = false
		}
	}
	return registered
}

func (s *Server) record(op string, name mbean.ObjectName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures[name]; err != nil {
		return err
	}
	s.ops = append(s.ops, op+":"+string(name))
	return nil
}

// Bean is a fake managed object backed by a Server.
type Bean struct {
	name      mbean.ObjectName
	server    *Server
	suspended bool
	children  map[string]map[string]mbean.ManagedObject
}

// NewBean returns a bean with no children.
func NewBean(server *Server, name mbean.ObjectName) *Bean {
	return &Bean{
		name:     name,
		server:   server,
		children: make(map[string]map[string]mbean.ManagedObject),
	}
}

// AddChild attaches child under the given attribute name.
func (b *Bean) AddChild(attr string, child *Bean) {
	byName := b.children[attr]
	if byName == nil {
		byName = make(map[string]mbean.ManagedObject)
		b.children[attr] = byName
	}
	byName[string(child.name)] = child
}

// Name implements mbean.ManagedObject.
func (b *Bean) Name() mbean.ObjectName { return b.name }

// Register implements mbean.ManagedObject.
func (b *Bean) Register() error { return b.server.record("register", b.name) }

// Unregister implements mbean.ManagedObject.
func (b *Bean) Unregister() error { return b.server.record("unregister", b.name) }

// Suspended implements mbean.ManagedObject.
func (b *Bean) Suspended() bool { return b.suspended }

// SetSuspended implements mbean.ManagedObject.
func (b *Bean) SetSuspended(v bool) { b.suspended = v }

// Children implements mbean.ManagedObject.
func (b *Bean) Children() map[string]map[string]mbean.ManagedObject { return b.children }

// Watcher is a fake presence watcher. It records subscriptions and lets
// tests drive appearance/disappearance of the watched object.
type Watcher struct {
	mu   sync.Mutex
	subs []*Subscription
}

// NewWatcher returns a watcher with no subscriptions.
func NewWatcher() *Watcher { return &Watcher{} }

// Watch implements mbean.Watcher.
func (w *Watcher) Watch(name mbean.ObjectName, cb mbean.PresenceCallback) mbean.PresenceSubscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	sub := &Subscription{name: name, cb: cb}
	w.subs = append(w.subs, sub)
	return sub
}

// Subscriptions returns every subscription ever created, newest last.
func (w *Watcher) Subscriptions() []*Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Subscription, len(w.subs))
	copy(out, w.subs)
	return out
}

// Current returns the most recent subscription, or nil.
func (w *Watcher) Current() *Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.subs) == 0 {
		return nil
	}
	return w.subs[len(w.subs)-1]
}

// Appear delivers an object-appeared notification on the most recent
// subscription.
func (w *Watcher) Appear() {
	if sub := w.Current(); sub != nil {
		sub.cb.ObjectAppeared(sub.name, sub)
	}
}

// Disappear delivers an object-disappeared notification on the most recent
// subscription.
func (w *Watcher) Disappear() {
	if sub := w.Current(); sub != nil {
		sub.cb.ObjectDisappeared(sub.name, sub)
	}
}

// Subscription is the fake presence subscription handed out by Watcher.
type Subscription struct {
	mu      sync.Mutex
	name    mbean.ObjectName
	cb      mbean.PresenceCallback
	started int
	stopped int
}

// StartListening implements mbean.PresenceSubscription.
func (s *Subscription) StartListening() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
}

// StopListening implements mbean.PresenceSubscription.
func (s *Subscription) StopListening() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped++
}

// Started returns how many times StartListening was called.
func (s *Subscription) Started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Stopped returns how many times StopListening was called.
func (s *Subscription) Stopped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

package mbean

import "strings"

// Severity classifies a diagnostic.
type Severity int

// Severity levels, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic codes reported by the RegistrationManager.
const (
	// CodeDeferredRegistrationFailed marks a registration that failed while
	// the deferred queue was being flushed on resume.
	CodeDeferredRegistrationFailed = "deferred-registration-failed"

	// CodeTreeRegistrationFailed marks a registration that failed during the
	// root-parent-appeared traversal.
	CodeTreeRegistrationFailed = "tree-registration-failed"

	// CodeTreeUnregistrationFailed marks an unregistration that failed
	// during the root-parent-disappeared traversal.
	CodeTreeUnregistrationFailed = "tree-unregistration-failed"
)

// Diagnostic records a non-fatal failure encountered while the manager was
// processing objects it could not report an error for directly (queue flush,
// presence-driven traversals). Processing of the remaining objects continues
// after a diagnostic is recorded.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g. "deferred-registration-failed"
	Message  string
	Object   ObjectName // the offending object, "" if not applicable
	Err      error      // underlying server error, nil if not applicable
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] object: message: err" with parts omitted when empty.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteByte(']')
	b.WriteByte(' ')
	if d.Object != "" {
		b.WriteString(string(d.Object))
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

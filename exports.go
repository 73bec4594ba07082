package gombal

import (
	"github.com/golangsnmp/gombal/mbean"
	"github.com/golangsnmp/gombal/typelib"
)

// Type aliases for public API - registration types come from the mbean
// subpackage, declaration types from typelib.

// ObjectName identifies an object on the external management server.
type ObjectName = mbean.ObjectName

// ManagedObject is a node in the management tree.
type ManagedObject = mbean.ManagedObject

// RegistrationManager drives registration decisions for one tree.
type RegistrationManager = mbean.RegistrationManager

// Watcher creates presence subscriptions for named server objects.
type Watcher = mbean.Watcher

// PresenceSubscription is an active subscription to lifecycle notifications.
type PresenceSubscription = mbean.PresenceSubscription

// PresenceCallback receives lifecycle notifications for a watched object.
type PresenceCallback = mbean.PresenceCallback

// Diagnostic records a non-fatal failure during queue flush or traversal.
type Diagnostic = mbean.Diagnostic

// Severity classifies a diagnostic.
type Severity = mbean.Severity

// Severity levels.
const (
	SeverityError   = mbean.SeverityError
	SeverityWarning = mbean.SeverityWarning
	SeverityInfo    = mbean.SeverityInfo
)

// TypeFactory constructs canonicalized type declarations.
type TypeFactory = typelib.Factory

// Type is implemented by every declaration a TypeFactory produces.
type Type = typelib.Type

// ClassDeclaration describes the shape of a class.
type ClassDeclaration = typelib.ClassDeclaration

// ArrayType is the canonical descriptor for an array type.
type ArrayType = typelib.ArrayType

// FieldDeclaration describes one field of a containing class.
type FieldDeclaration = typelib.FieldDeclaration

// MethodDeclaration describes one method of a containing class.
type MethodDeclaration = typelib.MethodDeclaration

// Modifier is a bitmask of declaration modifiers.
type Modifier = typelib.Modifier

// Declaration modifiers.
const (
	ModifierPublic    = typelib.ModifierPublic
	ModifierPrivate   = typelib.ModifierPrivate
	ModifierProtected = typelib.ModifierProtected
	ModifierStatic    = typelib.ModifierStatic
	ModifierFinal     = typelib.ModifierFinal
	ModifierAbstract  = typelib.ModifierAbstract
)

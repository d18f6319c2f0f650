// Package acl defines the permission model used throughout PermDeck: the
// closed catalog of atomic permissions, the named permission groups that
// bundle them for simplified editing, and the access control entry (ACE)
// type stored on files.
//
// This package is a leaf: it has no dependencies on the directory, tree, or
// engine packages. All types are JSON-serializable for storage backends and
// the HTTP API.
package acl

import "fmt"

// Effect is the outcome an ACE assigns to a permission: allow or deny.
type Effect uint8

const (
	// Allow grants the permission.
	Allow Effect = iota
	// Deny revokes the permission and overrides any allow.
	Deny
)

// String returns the wire/display name of the effect.
func (e Effect) String() string {
	switch e {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(e))
	}
}

// Valid reports whether e is a recognized effect.
func (e Effect) Valid() bool {
	return e == Allow || e == Deny
}

// ParseEffect converts a wire/display name back to an Effect.
func ParseEffect(s string) (Effect, error) {
	switch s {
	case "allow":
		return Allow, nil
	case "deny":
		return Deny, nil
	default:
		return 0, fmt.Errorf("unknown effect %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid effect %d", uint8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effect) UnmarshalText(b []byte) error {
	parsed, err := ParseEffect(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Permission is an atomic capability from the fixed catalog.
//
// The catalog is a closed enumeration rather than free-form strings so that
// typos are compile-time errors and switches over permissions can be checked
// for exhaustiveness.
type Permission uint8

const (
	// PermReadData allows reading file contents / listing folder contents.
	PermReadData Permission = iota
	// PermReadAttributes allows reading basic file attributes.
	PermReadAttributes
	// PermReadPermissions allows reading the file's ACL.
	PermReadPermissions
	// PermExecute allows executing a file / traversing a folder.
	PermExecute
	// PermWriteData allows writing file contents / creating files.
	PermWriteData
	// PermAppendData allows appending data / creating subfolders.
	PermAppendData
	// PermWriteAttributes allows changing basic file attributes.
	PermWriteAttributes
	// PermDelete allows deleting the file.
	PermDelete
	// PermChangePermissions allows modifying the file's ACL.
	PermChangePermissions
	// PermTakeOwnership allows taking ownership of the file.
	PermTakeOwnership

	// permissionCount is the number of catalog permissions. Keep last.
	permissionCount
)

var permissionNames = [permissionCount]string{
	PermReadData:          "read-data",
	PermReadAttributes:    "read-attributes",
	PermReadPermissions:   "read-permissions",
	PermExecute:           "execute",
	PermWriteData:         "write-data",
	PermAppendData:        "append-data",
	PermWriteAttributes:   "write-attributes",
	PermDelete:            "delete",
	PermChangePermissions: "change-permissions",
	PermTakeOwnership:     "take-ownership",
}

// String returns the wire/display name of the permission.
func (p Permission) String() string {
	if !p.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
	return permissionNames[p]
}

// Valid reports whether p is a catalog permission.
func (p Permission) Valid() bool {
	return p < permissionCount
}

// ParsePermission converts a wire/display name back to a Permission.
func ParsePermission(s string) (Permission, error) {
	for i, name := range permissionNames {
		if name == s {
			return Permission(i), nil
		}
	}
	return 0, fmt.Errorf("unknown permission %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Permission) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid permission %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Permission) UnmarshalText(b []byte) error {
	parsed, err := ParsePermission(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// AllPermissions returns the full catalog in declaration order.
// The returned slice is a fresh copy and safe to modify.
func AllPermissions() []Permission {
	perms := make([]Permission, permissionCount)
	for i := range perms {
		perms[i] = Permission(i)
	}
	return perms
}

// ACE is a single access control entry on a file: one (principal,
// permission, effect) grant record.
//
// Inherited is false for entries stored in a file's direct ACL. The
// evaluator sets it to true on entries it collects from ancestor files, so
// consumers can tell an inherited grant from a direct one.
type ACE struct {
	Principal  string     `json:"principal" yaml:"principal"`
	Permission Permission `json:"permission" yaml:"permission"`
	Effect     Effect     `json:"effect" yaml:"effect"`
	Inherited  bool       `json:"inherited,omitempty" yaml:"inherited,omitempty"`
}

// Matches reports whether the ACE targets the given (principal, permission,
// effect) triple, ignoring the Inherited flag.
func (a ACE) Matches(principal string, perm Permission, effect Effect) bool {
	return a.Principal == principal && a.Permission == perm && a.Effect == effect
}

// String returns a compact human-readable form, e.g. "allow alice read-data".
func (a ACE) String() string {
	suffix := ""
	if a.Inherited {
		suffix = " (inherited)"
	}
	return fmt.Sprintf("%s %s %s%s", a.Effect, a.Principal, a.Permission, suffix)
}

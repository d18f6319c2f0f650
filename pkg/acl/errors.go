package acl

import "fmt"

// ErrorCode classifies engine failures.
type ErrorCode int

const (
	// ErrUnknownPrincipal indicates a user or group lookup failed.
	ErrUnknownPrincipal ErrorCode = iota + 1

	// ErrUnknownFile indicates a file path lookup failed.
	ErrUnknownFile

	// ErrGroupAttributed indicates an attempt to remove a permission whose
	// only supporting grant targets a group the user belongs to. The direct
	// ACE does not exist, so removal would be a misleading no-op.
	ErrGroupAttributed

	// ErrInheritedGrant indicates an attempt to remove a permission whose
	// only supporting grant lives on an ancestor file. Inherited ACEs are
	// never mutated through the engine.
	ErrInheritedGrant

	// ErrCycleDetected indicates a membership or file-parent cycle was
	// discovered during traversal. This is a data-integrity fault; the
	// engine does not attempt partial evaluation over a cyclic graph.
	ErrCycleDetected

	// ErrInvalidArgument indicates a malformed permission, group, or effect.
	ErrInvalidArgument
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrUnknownPrincipal:
		return "UnknownPrincipal"
	case ErrUnknownFile:
		return "UnknownFile"
	case ErrGroupAttributed:
		return "GroupAttributed"
	case ErrInheritedGrant:
		return "InheritedGrant"
	case ErrCycleDetected:
		return "CycleDetected"
	case ErrInvalidArgument:
		return "InvalidArgument"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// EngineError is the error type returned by the evaluator, aggregator,
// attribution checker, and mutation engine.
type EngineError struct {
	Code    ErrorCode
	Message string
	// Subject is the principal, file path, or group the error refers to.
	Subject string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnknownPrincipalError creates an UnknownPrincipal error.
func NewUnknownPrincipalError(name string) *EngineError {
	return &EngineError{
		Code:    ErrUnknownPrincipal,
		Message: "principal not found",
		Subject: name,
	}
}

// NewUnknownFileError creates an UnknownFile error.
func NewUnknownFileError(path string) *EngineError {
	return &EngineError{
		Code:    ErrUnknownFile,
		Message: "file not found",
		Subject: path,
	}
}

// NewGroupAttributedError creates a GroupAttributed error naming the group
// that supplies the permission.
func NewGroupAttributedError(group string, perm Permission) *EngineError {
	return &EngineError{
		Code:    ErrGroupAttributed,
		Message: fmt.Sprintf("%s is granted through group membership and cannot be removed directly", perm),
		Subject: group,
	}
}

// NewInheritedGrantError creates an InheritedGrant error naming the ancestor
// file the grant originates from.
func NewInheritedGrantError(sourcePath string, perm Permission) *EngineError {
	return &EngineError{
		Code:    ErrInheritedGrant,
		Message: fmt.Sprintf("%s is inherited from an ancestor and cannot be removed here", perm),
		Subject: sourcePath,
	}
}

// NewCycleDetectedError creates a CycleDetected error for the named
// principal or file.
func NewCycleDetectedError(subject string) *EngineError {
	return &EngineError{
		Code:    ErrCycleDetected,
		Message: "cycle detected during traversal",
		Subject: subject,
	}
}

// NewInvalidArgumentError creates an InvalidArgument error.
func NewInvalidArgumentError(message string) *EngineError {
	return &EngineError{
		Code:    ErrInvalidArgument,
		Message: message,
	}
}

// IsUnknownPrincipal reports whether err is an UnknownPrincipal engine error.
func IsUnknownPrincipal(err error) bool {
	return hasCode(err, ErrUnknownPrincipal)
}

// IsUnknownFile reports whether err is an UnknownFile engine error.
func IsUnknownFile(err error) bool {
	return hasCode(err, ErrUnknownFile)
}

// IsGroupAttributed reports whether err is a GroupAttributed engine error.
func IsGroupAttributed(err error) bool {
	return hasCode(err, ErrGroupAttributed)
}

// IsInheritedGrant reports whether err is an InheritedGrant engine error.
func IsInheritedGrant(err error) bool {
	return hasCode(err, ErrInheritedGrant)
}

// IsCycleDetected reports whether err is a CycleDetected engine error.
func IsCycleDetected(err error) bool {
	return hasCode(err, ErrCycleDetected)
}

func hasCode(err error, code ErrorCode) bool {
	if engineErr, ok := err.(*EngineError); ok {
		return engineErr.Code == code
	}
	return false
}

package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so logs can be
// aggregated and queried by field.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Engine Operations
	// ========================================================================
	KeyOperation  = "operation"   // Engine operation: evaluate, aggregate, attribute, mutate
	KeyDomain     = "domain"      // ACL domain name
	KeyPath       = "path"        // File path the operation targets
	KeyParentPath = "parent_path" // Parent file path
	KeyPrincipal  = "principal"   // Principal name (user or group)
	KeyUser       = "user"        // Subject user of an evaluation
	KeyGroup      = "group"       // Group name (membership or permission group)
	KeyPermission = "permission"  // Permission name
	KeyEffect     = "effect"      // allow or deny
	KeyState      = "state"       // Evaluation outcome: allowed, denied, unset
	KeyPresent    = "present"     // Mutation direction: grant (true) or retract (false)

	// ========================================================================
	// HTTP API
	// ========================================================================
	KeyRequestID  = "request_id"  // Per-request identifier
	KeyMethod     = "method"      // HTTP method
	KeyRoute      = "route"       // Matched route pattern
	KeyStatusCode = "status_code" // HTTP response status
	KeyClientIP   = "client_ip"   // Client IP address
	KeyUserAgent  = "user_agent"  // Client user agent

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Engine error code
	KeyCount      = "count"       // Generic count field

	// ========================================================================
	// Lifecycle
	// ========================================================================
	KeyComponent = "component" // Server component: api, metrics, watcher, store
	KeyAddress   = "address"   // Listen address
	KeyVersion   = "version"   // Build version
	KeyFile      = "file"      // On-disk file (seed, config, database)
)

// ============================================================================
// Typed attribute constructors
// ============================================================================

// Operation returns a slog.Attr for the engine operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Domain returns a slog.Attr for the ACL domain name.
func Domain(name string) slog.Attr {
	return slog.String(KeyDomain, name)
}

// Path returns a slog.Attr for a file path.
func Path(path string) slog.Attr {
	return slog.String(KeyPath, path)
}

// Principal returns a slog.Attr for a principal name.
func Principal(name string) slog.Attr {
	return slog.String(KeyPrincipal, name)
}

// Permission returns a slog.Attr for a permission name.
func Permission(perm fmt.Stringer) slog.Attr {
	return slog.String(KeyPermission, perm.String())
}

// Effect returns a slog.Attr for an effect name.
func Effect(effect fmt.Stringer) slog.Attr {
	return slog.String(KeyEffect, effect.String())
}

// Err returns a slog.Attr for an error value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// DurationMs returns a slog.Attr for a duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for permission operations.
// Keys use an "acl." prefix; HTTP attributes follow OpenTelemetry semantic
// conventions and are added by the API layer.
const (
	AttrDomain     = "acl.domain"     // Domain name
	AttrPath       = "acl.path"       // File path under evaluation
	AttrPrincipal  = "acl.principal"  // User or group name
	AttrPermission = "acl.permission" // Catalog permission name
	AttrGroup      = "acl.group"      // Permission group name
	AttrEffect     = "acl.effect"     // allow or deny
	AttrState      = "acl.state"      // allowed, denied, or unset
	AttrPresent    = "acl.present"    // Mutation direction
	AttrSnapshot   = "acl.snapshot"   // Persisted snapshot name
)

// Span names for operations.
// Format: <component>.<operation>
const (
	SpanEvaluate  = "engine.evaluate"
	SpanAggregate = "engine.aggregate"
	SpanAttribute = "engine.attribute"
	SpanMutate    = "engine.mutate"

	SpanSeedLoad      = "domain.seed_load"
	SpanSeedReload    = "domain.seed_reload"
	SpanRestore       = "domain.restore"
	SpanSnapshotSave  = "store.snapshot_save"
	SpanSnapshotLoad  = "store.snapshot_load"
	SpanSnapshotList  = "store.snapshot_list"
	SpanSnapshotPurge = "store.snapshot_delete"
)

// Domain returns an attribute for the domain name.
func Domain(name string) attribute.KeyValue {
	return attribute.String(AttrDomain, name)
}

// Path returns an attribute for the file path.
func Path(path string) attribute.KeyValue {
	return attribute.String(AttrPath, path)
}

// Principal returns an attribute for a user or group name.
func Principal(name string) attribute.KeyValue {
	return attribute.String(AttrPrincipal, name)
}

// Permission returns an attribute for a catalog permission name.
func Permission(name string) attribute.KeyValue {
	return attribute.String(AttrPermission, name)
}

// Group returns an attribute for a permission group name.
func Group(name string) attribute.KeyValue {
	return attribute.String(AttrGroup, name)
}

// Effect returns an attribute for allow or deny.
func Effect(effect string) attribute.KeyValue {
	return attribute.String(AttrEffect, effect)
}

// State returns an attribute for an evaluation outcome.
func State(state string) attribute.KeyValue {
	return attribute.String(AttrState, state)
}

// Present returns an attribute for the mutation direction.
func Present(present bool) attribute.KeyValue {
	return attribute.Bool(AttrPresent, present)
}

// Snapshot returns an attribute for a persisted snapshot name.
func Snapshot(name string) attribute.KeyValue {
	return attribute.String(AttrSnapshot, name)
}

// StartEvaluationSpan starts a span for a permission evaluation.
func StartEvaluationSpan(ctx context.Context, path, user string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Path(path),
		Principal(user),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, SpanEvaluate, trace.WithAttributes(allAttrs...))
}

// StartMutationSpan starts a span for a grant mutation.
func StartMutationSpan(ctx context.Context, path, user string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Path(path),
		Principal(user),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, SpanMutate, trace.WithAttributes(allAttrs...))
}

// StartStoreSpan starts a span for a snapshot store operation.
func StartStoreSpan(ctx context.Context, name string, snapshot string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Snapshot(snapshot),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}

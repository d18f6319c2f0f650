package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/permdeck/permdeck/internal/logger"
	"github.com/permdeck/permdeck/internal/telemetry"
	"github.com/permdeck/permdeck/pkg/domain"
	badgerstore "github.com/permdeck/permdeck/pkg/store/domain/badger"
)

// SnapshotStore persists and retrieves domain snapshots.
// *badgerstore.Store satisfies it.
type SnapshotStore interface {
	Save(ctx context.Context, snap *domain.Snapshot) error
	Load(ctx context.Context, name string) (*domain.Snapshot, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// DomainActivator is a DomainSource that can also swap in a restored domain.
// *domain.Manager satisfies it.
type DomainActivator interface {
	DomainSource
	Set(d *domain.Domain)
}

// SnapshotsHandler handles domain snapshot persistence endpoints.
type SnapshotsHandler struct {
	domains DomainActivator
	store   SnapshotStore
	opts    []domain.Option
}

// NewSnapshotsHandler creates a new SnapshotsHandler.
// The opts are applied to domains rebuilt from restored snapshots.
func NewSnapshotsHandler(domains DomainActivator, store SnapshotStore, opts ...domain.Option) *SnapshotsHandler {
	return &SnapshotsHandler{domains: domains, store: store, opts: opts}
}

// List handles GET /api/v1/snapshots.
// Lists the names of all persisted snapshots.
func (h *SnapshotsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.StartStoreSpan(r.Context(), telemetry.SpanSnapshotList, "")
	defer span.End()

	names, err := h.store.List(ctx)
	if err != nil {
		telemetry.RecordError(ctx, err)
		InternalServerError(w, err.Error())
		return
	}
	WriteJSONOK(w, names)
}

// Save handles POST /api/v1/snapshots.
// Persists the active domain's full state under its name.
func (h *SnapshotsHandler) Save(w http.ResponseWriter, r *http.Request) {
	d, ok := currentDomain(w, h.domains)
	if !ok {
		return
	}

	ctx, span := telemetry.StartStoreSpan(r.Context(), telemetry.SpanSnapshotSave, d.Name())
	defer span.End()

	snap, err := d.Snapshot()
	if err != nil {
		telemetry.RecordError(ctx, err)
		InternalServerError(w, err.Error())
		return
	}
	if err := h.store.Save(ctx, snap); err != nil {
		telemetry.RecordError(ctx, err)
		InternalServerError(w, err.Error())
		return
	}

	logger.InfoCtx(ctx, "Domain snapshot saved",
		logger.Domain(snap.Name),
		logger.KeyCount, len(snap.Files),
	)

	WriteJSONCreated(w, map[string]string{"name": snap.Name})
}

// Restore handles POST /api/v1/snapshots/{name}/restore.
// Rebuilds a domain from the persisted snapshot and makes it active.
func (h *SnapshotsHandler) Restore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ctx, span := telemetry.StartStoreSpan(r.Context(), telemetry.SpanSnapshotLoad, name)
	defer span.End()

	snap, err := h.store.Load(ctx, name)
	if err != nil {
		if errors.Is(err, badgerstore.ErrDomainNotFound) {
			NotFound(w, "Snapshot not found")
			return
		}
		telemetry.RecordError(ctx, err)
		InternalServerError(w, err.Error())
		return
	}

	d, err := domain.Restore(snap, h.opts...)
	if err != nil {
		telemetry.RecordError(ctx, err)
		InternalServerError(w, err.Error())
		return
	}
	h.domains.Set(d)

	logger.InfoCtx(ctx, "Domain snapshot restored", logger.Domain(name))

	WriteJSONOK(w, map[string]string{"name": name})
}

// Delete handles DELETE /api/v1/snapshots/{name}.
func (h *SnapshotsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ctx, span := telemetry.StartStoreSpan(r.Context(), telemetry.SpanSnapshotPurge, name)
	defer span.End()

	if err := h.store.Delete(ctx, name); err != nil {
		if errors.Is(err, badgerstore.ErrDomainNotFound) {
			NotFound(w, "Snapshot not found")
			return
		}
		telemetry.RecordError(ctx, err)
		InternalServerError(w, err.Error())
		return
	}

	WriteJSONOK(w, map[string]string{"name": name})
}

package pds

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Entity store errors.
var (
	ErrNoPackages    = errors.New("pds: entity handler needs at least one package record")
	ErrInvalidEntity = errors.New("pds: entity failed validation")
	ErrHashMismatch  = errors.New("pds: entity file does not match its reference")
)

const (
	entityFileKey = "EntityFile"
	entityTypeKey = "EntityType"
	entityFileExt = ".dat"
)

// EntityHandler stores entities in a directory, content-addressed by the
// SHA-256 of their serialized form, and caches loaded entities. It is safe
// for concurrent use.
type EntityHandler struct {
	path     string
	registry Registry

	mu       sync.RWMutex
	entities map[EntityRef]Entity
	loads    singleflight.Group
}

// NewEntityHandler returns a handler storing entities under path, which must
// be an existing directory.
func NewEntityHandler(path string, records ...*PackageRecord) (*EntityHandler, error) {
	if len(records) == 0 {
		return nil, ErrNoPackages
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("entity directory: %w", err)
	}

	if !st.IsDir() {
		return nil, fmt.Errorf("entity directory %s is not a directory", path)
	}

	return &EntityHandler{
		path:     path,
		registry: Registry(records),
		entities: make(map[EntityRef]Entity),
	}, nil
}

// Path returns the entity directory.
func (h *EntityHandler) Path() string { return h.path }

func (h *EntityHandler) filePath(ref EntityRef) string {
	return filepath.Join(h.path, ref.String()+entityFileExt)
}

// Serialize validates e and returns its entity file bytes.
func (h *EntityHandler) Serialize(e Entity) ([]byte, error) {
	v := NewValidator()
	if err := h.registry.Validate(e, v); err != nil {
		return nil, err
	}

	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d errors (%s)", ErrInvalidEntity, v.ErrorCount(), v.ErrorIDs())
	}

	w := NewWriter()

	sec, err := w.BeginSection(entityFileKey)
	if err != nil {
		return nil, err
	}

	if err := WriteValue(sec, entityTypeKey, e.EntityTypeString()); err != nil {
		return nil, err
	}

	if err := h.registry.Write(e, sec); err != nil {
		return nil, err
	}

	if err := w.EndSection(sec); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// AddEntity stores e and returns its reference. Storing an entity whose file
// already exists succeeds without rewriting it. The cache holds a copy read
// back from the stored bytes, so later changes to e do not reach it.
func (h *EntityHandler) AddEntity(e Entity) (EntityRef, error) {
	data, err := h.Serialize(e)
	if err != nil {
		return EntityRef{}, err
	}

	ref := EntityRef(sha256.Sum256(data))
	path := h.filePath(ref)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)

	switch {
	case errors.Is(err, fs.ErrExist):
		Logger().Debug("entity already stored", zap.Stringer("ref", ref))
	case err != nil:
		return EntityRef{}, fmt.Errorf("failed to create entity file: %w", err)
	default:
		_, werr := f.Write(data)
		cerr := f.Close()

		if err := errors.Join(werr, cerr); err != nil {
			_ = os.Remove(path)
			return EntityRef{}, fmt.Errorf("failed to write entity file %s: %w", path, err)
		}

		Logger().Debug("entity stored", zap.Stringer("ref", ref), zap.String("type", e.EntityTypeString()))
	}

	stored, err := h.Deserialize(data)
	if err != nil {
		return EntityRef{}, err
	}

	h.mu.Lock()
	h.entities[ref] = stored
	h.mu.Unlock()

	return ref, nil
}

// AddEntities stores entities concurrently and returns their references in
// order. The first failure cancels the remaining writes.
func (h *EntityHandler) AddEntities(ctx context.Context, entities ...Entity) ([]EntityRef, error) {
	refs := make([]EntityRef, len(entities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, e := range entities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			ref, err := h.AddEntity(e)
			if err != nil {
				return fmt.Errorf("entity %d: %w", i, err)
			}

			refs[i] = ref

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return refs, nil
}

// LoadEntity returns the entity stored under ref, reading it from disk if it
// is not loaded. Concurrent loads of one ref share a single read.
func (h *EntityHandler) LoadEntity(ref EntityRef) (Entity, error) {
	if e, ok := h.GetLoadedEntity(ref); ok {
		return e, nil
	}

	v, err, _ := h.loads.Do(ref.String(), func() (any, error) {
		if e, ok := h.GetLoadedEntity(ref); ok {
			return e, nil
		}

		e, err := h.readEntity(ref)
		if err != nil {
			return nil, err
		}

		h.mu.Lock()
		h.entities[ref] = e
		h.mu.Unlock()

		return e, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(Entity), nil
}

func (h *EntityHandler) readEntity(ref EntityRef) (Entity, error) {
	data, err := os.ReadFile(h.filePath(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to read entity %s: %w", ref, err)
	}

	if sum := sha256.Sum256(data); !bytes.Equal(sum[:], ref[:]) {
		return nil, fmt.Errorf("%w: %s", ErrHashMismatch, ref)
	}

	return h.Deserialize(data)
}

// Deserialize constructs and reads the entity held by entity file bytes.
func (h *EntityHandler) Deserialize(data []byte) (Entity, error) {
	r := NewReader(data)

	sec, err := r.BeginSection(entityFileKey, false)
	if err != nil {
		return nil, err
	}

	var typeString string
	if err := ReadValue(sec, entityTypeKey, &typeString); err != nil {
		return nil, err
	}

	e, err := h.registry.New(typeString)
	if err != nil {
		return nil, err
	}

	if err := h.registry.Read(e, sec); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", typeString, err)
	}

	if err := r.EndSection(sec); err != nil {
		return nil, err
	}

	return e, nil
}

// IsEntityLoaded reports whether ref is cached.
func (h *EntityHandler) IsEntityLoaded(ref EntityRef) bool {
	_, ok := h.GetLoadedEntity(ref)
	return ok
}

// GetLoadedEntity returns the cached entity of ref.
func (h *EntityHandler) GetLoadedEntity(ref EntityRef) (Entity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.entities[ref]

	return e, ok
}

// UnloadEntity drops ref from the cache. The stored file is kept.
func (h *EntityHandler) UnloadEntity(ref EntityRef) {
	h.mu.Lock()
	delete(h.entities, ref)
	h.mu.Unlock()
}

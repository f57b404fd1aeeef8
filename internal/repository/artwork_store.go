package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"inner-garden/internal/domain"
)

var (
	// ErrCorruptCollection indicates the persisted document exists but does
	// not parse. Corrupt data halts the request rather than looking empty.
	ErrCorruptCollection = errors.New("artwork collection is corrupt")
)

// ArtworkStore defines durable read/write access to the artwork collection.
// The collection is owned exclusively by this store; callers receive their
// own copy on Load.
type ArtworkStore interface {
	Load(ctx context.Context) (*domain.Collection, error)
	Save(ctx context.Context, collection *domain.Collection) error
}

type fileArtworkStore struct {
	path string
}

// NewFileArtworkStore creates a store persisting the collection as a single
// JSON document at path.
func NewFileArtworkStore(path string) ArtworkStore {
	return &fileArtworkStore{path: path}
}

// Load returns the persisted collection. A document that does not exist yet
// reads as an empty collection with a null updated_at.
func (s *fileArtworkStore) Load(ctx context.Context) (*domain.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewCollection(), nil
		}
		return nil, fmt.Errorf("failed to read artwork collection: %w", err)
	}

	var collection domain.Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
	}

	if collection.Artworks == nil {
		collection.Artworks = []domain.Artwork{}
	}

	return &collection, nil
}

// Save serializes the full collection and replaces the persisted document via
// a temp-file rename, so readers never observe a torn write. The collection
// updated_at is stamped to the current time if the caller left it unset.
func (s *fileArtworkStore) Save(ctx context.Context, collection *domain.Collection) error {
	if collection.UpdatedAt == nil {
		now := time.Now().UTC()
		collection.UpdatedAt = &now
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artwork collection: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "artworks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp collection file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write collection data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp collection file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace collection file: %w", err)
	}

	success = true
	return nil
}

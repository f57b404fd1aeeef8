package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inner-garden/internal/domain"
	"inner-garden/internal/repository"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")
)

// CatalogService owns all reads and writes of the artwork collection.
type CatalogService interface {
	List(ctx context.Context) (*domain.Collection, error)
	Get(ctx context.Context, id string) (*domain.Artwork, error)
	Create(ctx context.Context, input map[string]any) (*domain.Artwork, error)
	Update(ctx context.Context, id string, input map[string]any) (*domain.Artwork, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	store repository.ArtworkStore
	now   func() time.Time

	// mu serializes read-modify-write cycles so concurrent admin writes
	// cannot race on the shared document.
	mu sync.Mutex
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(store repository.ArtworkStore) CatalogService {
	return &catalogService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns the full persisted collection.
func (s *catalogService) List(ctx context.Context) (*domain.Collection, error) {
	collection, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load artwork collection: %w", err)
	}
	return collection, nil
}

// Get returns a single artwork by id.
func (s *catalogService) Get(ctx context.Context, id string) (*domain.Artwork, error) {
	collection, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load artwork collection: %w", err)
	}

	art := collection.Find(id)
	if art == nil {
		return nil, ErrArtworkNotFound
	}
	return art, nil
}

// Create normalizes the input into a fresh artwork and prepends it to the
// collection, so the newest record lists first.
func (s *catalogService) Create(ctx context.Context, input map[string]any) (*domain.Artwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load artwork collection: %w", err)
	}

	now := s.now()
	art := domain.Normalize(input, nil, now)
	collection.Artworks = append([]domain.Artwork{art}, collection.Artworks...)
	collection.UpdatedAt = &now

	if err := s.store.Save(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to save artwork collection: %w", err)
	}

	return &art, nil
}

// Update merges the input over the existing record with the given id.
func (s *catalogService) Update(ctx context.Context, id string, input map[string]any) (*domain.Artwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load artwork collection: %w", err)
	}

	existing := collection.Find(id)
	if existing == nil {
		return nil, ErrArtworkNotFound
	}

	now := s.now()
	art := domain.Normalize(input, existing, now)
	*existing = art
	collection.UpdatedAt = &now

	if err := s.store.Save(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to save artwork collection: %w", err)
	}

	return &art, nil
}

// Delete removes the record with the given id.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load artwork collection: %w", err)
	}

	remaining := make([]domain.Artwork, 0, len(collection.Artworks))
	for _, art := range collection.Artworks {
		if art.ID != id {
			remaining = append(remaining, art)
		}
	}
	if len(remaining) == len(collection.Artworks) {
		return ErrArtworkNotFound
	}

	now := s.now()
	collection.Artworks = remaining
	collection.UpdatedAt = &now

	if err := s.store.Save(ctx, collection); err != nil {
		return fmt.Errorf("failed to save artwork collection: %w", err)
	}

	return nil
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wonwonleywon/roster-api/pkg/core/domain"
	"github.com/wonwonleywon/roster-api/pkg/ports"
)

type ArtistService struct {
	repo ports.ArtistRepository
}

func NewArtistService(repo ports.ArtistRepository) *ArtistService {
	return &ArtistService{repo: repo}
}

// ListArtists returns the full roster ascending by display order.
// Ties on order are broken by creation time, then id (the repository
// sorts; see the sqlite adapter).
func (s *ArtistService) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	return s.repo.List(ctx)
}

func (s *ArtistService) AddArtist(ctx context.Context, name, instagramURL string, order float64) (*domain.Artist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}

	// No collision check on order: the caller supplies whatever value
	// positions the entry where they want it.
	artist := &domain.Artist{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		InstagramURL: strings.TrimSpace(instagramURL),
		Order:        order,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *ArtistService) UpdateArtist(ctx context.Context, id, name, instagramURL string) (*domain.Artist, error) {
	artist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.ErrNotFound
	}

	// Partial update: empty fields keep their current value.
	if strings.TrimSpace(name) != "" {
		artist.Name = strings.TrimSpace(name)
	}
	if strings.TrimSpace(instagramURL) != "" {
		artist.InstagramURL = strings.TrimSpace(instagramURL)
	}
	artist.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (s *ArtistService) DeleteArtist(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Reorder applies each {id, order} pair as an independent update, one at a
// time, in the order given. This is deliberately NOT a transaction: an
// unknown id does not undo updates already applied, and the remaining valid
// pairs are still processed before the batch reports failure. A storage
// failure, by contrast, aborts immediately.
func (s *ArtistService) Reorder(ctx context.Context, pairs []domain.ReorderPair) error {
	var failed error
	for _, p := range pairs {
		err := s.repo.UpdateOrder(ctx, p.ID, p.Order)
		if errors.Is(err, domain.ErrNotFound) {
			failed = err
			continue
		}
		if err != nil {
			return err
		}
	}
	return failed
}

var _ ports.ArtistService = (*ArtistService)(nil)

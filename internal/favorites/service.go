// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/playadb/internal/database"
	"github.com/tomtom215/playadb/internal/logging"
	"github.com/tomtom215/playadb/internal/metrics"
	"github.com/tomtom215/playadb/internal/models"
)

// Service manages favorite flags. Flags are keyed by (uid, object type) and
// are never touched by an import.
type Service struct {
	db *database.DB
}

// NewService creates a favorites service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// ToggleFavorite flips the flag of ref and returns the new state. The read
// and the write share one write transaction, so concurrent toggles of the
// same ref never lose an update.
func (s *Service) ToggleFavorite(ctx context.Context, ref models.EntityRef) (bool, error) {
	if err := ref.Validate(); err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	var next bool
	err := s.db.WriteTx(ctx, func(tx *sql.Tx) error {
		current, err := database.FavoriteFlag(ctx, tx, ref)
		if err != nil {
			return err
		}
		next = !current
		return database.SetFavoriteFlag(ctx, tx, ref, next)
	})
	if err != nil {
		return false, err
	}

	metrics.RecordFavoriteToggle(string(ref.Type))
	logging.Ctx(ctx).Debug().
		Str("ref", ref.String()).
		Bool("favorite", next).
		Msg("Favorite toggled")
	return next, nil
}

// SetFavorite stores an explicit flag for ref.
func (s *Service) SetFavorite(ctx context.Context, ref models.EntityRef, favorite bool) error {
	if err := ref.Validate(); err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return s.db.WriteTx(ctx, func(tx *sql.Tx) error {
		return database.SetFavoriteFlag(ctx, tx, ref, favorite)
	})
}

// IsFavorite reports whether ref is flagged. A ref never toggled is not.
func (s *Service) IsFavorite(ctx context.Context, ref models.EntityRef) (bool, error) {
	if err := ref.Validate(); err != nil {
		return false, fmt.Errorf("is favorite: %w", err)
	}
	return s.db.IsFavorite(ctx, ref)
}

// GetFavorites returns the flagged objects that exist in the current
// directory, ordered art, camp, event and then by uid.
func (s *Service) GetFavorites(ctx context.Context) ([]models.Entity, error) {
	refs, err := s.db.ListFavoriteRefs(ctx)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return []models.Entity{}, nil
	}
	return s.db.GetEntities(ctx, refs)
}

// FavoriteRefs returns every flagged ref, including ones whose object left
// the directory in a later import.
func (s *Service) FavoriteRefs(ctx context.Context) ([]models.EntityRef, error) {
	return s.db.ListFavoriteRefs(ctx)
}

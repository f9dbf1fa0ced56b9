package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/metrics"
)

// NoteService handles note CRUD scoped to the acting user. A note owned by
// someone else is reported as domain.ErrNotFound so its existence is not
// revealed.
type NoteService struct {
	notes domain.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes domain.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// Create stores a new note owned by userID.
func (s *NoteService) Create(ctx context.Context, userID int64, in NoteInput) (*domain.Note, error) {
	trimFields(&in.Title, &in.Content)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	note := &domain.Note{
		UserID:  userID,
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	metrics.NotesMutationsTotal.WithLabelValues("create").Inc()
	return note, nil
}

// ListByUser returns the user's notes, newest first.
func (s *NoteService) ListByUser(ctx context.Context, userID int64) ([]domain.Note, error) {
	return s.notes.ListByUser(ctx, userID)
}

// Get returns the note if it exists and belongs to userID.
func (s *NoteService) Get(ctx context.Context, userID, noteID int64) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return note, nil
}

// Update overwrites the title and content of one of the user's notes.
func (s *NoteService) Update(ctx context.Context, userID, noteID int64, in NoteInput) (*domain.Note, error) {
	note, err := s.Get(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	trimFields(&in.Title, &in.Content)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	note.Title = in.Title
	note.Content = in.Content
	if err := s.notes.Update(ctx, note); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	metrics.NotesMutationsTotal.WithLabelValues("update").Inc()
	return note, nil
}

// Delete removes one of the user's notes.
func (s *NoteService) Delete(ctx context.Context, userID, noteID int64) error {
	if _, err := s.Get(ctx, userID, noteID); err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, noteID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete note: %w", err)
	}

	metrics.NotesMutationsTotal.WithLabelValues("delete").Inc()
	return nil
}

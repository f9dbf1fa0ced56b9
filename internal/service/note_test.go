package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/service"
)

func newNoteFixture(t *testing.T) (*service.NoteService, *domain.User, *domain.User) {
	t.Helper()
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), 4)
	ctx := context.Background()

	alice, err := auth.Register(ctx, registerInput("alice", "alice@example.com", "secret1"))
	if err != nil {
		t.Fatalf("Register alice: %v", err)
	}
	bob, err := auth.Register(ctx, registerInput("bob", "bob@example.com", "secret1"))
	if err != nil {
		t.Fatalf("Register bob: %v", err)
	}
	return service.NewNoteService(db.Notes()), alice, bob
}

func TestNoteService_CreateAndList(t *testing.T) {
	notes, alice, bob := newNoteFixture(t)
	ctx := context.Background()

	if _, err := notes.Create(ctx, alice.ID, service.NoteInput{Title: "a1", Content: "x"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := notes.Create(ctx, bob.ID, service.NoteInput{Title: "b1", Content: "y"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := notes.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].Title != "a1" {
		t.Fatalf("expected only alice's note, got %+v", list)
	}
}

func TestNoteService_Create_Validation(t *testing.T) {
	notes, alice, _ := newNoteFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    service.NoteInput
		field string
	}{
		{"empty title", service.NoteInput{Title: "", Content: "x"}, "title"},
		{"empty content", service.NoteInput{Title: "t", Content: ""}, "content"},
		{"long title", service.NoteInput{Title: strings.Repeat("t", 81), Content: "x"}, "title"},
		{"blank title", service.NoteInput{Title: "   ", Content: "x"}, "title"},
		{"blank content", service.NoteInput{Title: "t", Content: " \n "}, "content"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := notes.Create(ctx, alice.ID, tc.in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field(tc.field) == "" {
				t.Fatalf("expected error on %s, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestNoteService_Update_RejectsBlankTitle(t *testing.T) {
	notes, alice, _ := newNoteFixture(t)
	ctx := context.Background()

	note, err := notes.Create(ctx, alice.ID, service.NoteInput{Title: "  keep  ", Content: "body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.Title != "keep" {
		t.Fatalf("expected trimmed title, got %q", note.Title)
	}

	_, err = notes.Update(ctx, alice.ID, note.ID, service.NoteInput{Title: "   ", Content: "new"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := notes.Get(ctx, alice.ID, note.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "keep" || got.Content != "body" {
		t.Fatalf("expected note unchanged, got %+v", got)
	}
}

func TestNoteService_OtherUsersNoteIsNotFound(t *testing.T) {
	notes, alice, bob := newNoteFixture(t)
	ctx := context.Background()

	note, err := notes.Create(ctx, alice.ID, service.NoteInput{Title: "private", Content: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := notes.Get(ctx, bob.ID, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := notes.Update(ctx, bob.ID, note.ID, service.NoteInput{Title: "hijack", Content: "y"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := notes.Delete(ctx, bob.ID, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}

	still, err := notes.Get(ctx, alice.ID, note.ID)
	if err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if still.Title != "private" {
		t.Fatalf("expected note untouched, got %+v", still)
	}
}

func TestNoteService_UpdateAndDelete(t *testing.T) {
	notes, alice, _ := newNoteFixture(t)
	ctx := context.Background()

	note, err := notes.Create(ctx, alice.ID, service.NoteInput{Title: "draft", Content: "x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := notes.Update(ctx, alice.ID, note.ID, service.NoteInput{Title: "final", Content: "y"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "final" || updated.Content != "y" || updated.UserID != alice.ID {
		t.Fatalf("unexpected note %+v", updated)
	}

	if err := notes.Delete(ctx, alice.ID, note.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := notes.Get(ctx, alice.ID, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNoteService_MissingNote(t *testing.T) {
	notes, alice, _ := newNoteFixture(t)

	if _, err := notes.Get(context.Background(), alice.ID, 12345); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

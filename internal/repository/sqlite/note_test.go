package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/notebook/internal/domain"
	"github.com/msomdec/notebook/internal/repository/sqlite"
)

func TestNoteRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "writer", "writer@example.com")
	note := &domain.Note{UserID: user.ID, Title: "Groceries", Content: "milk, eggs"}
	if err := repo.Create(ctx, note); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.ID == 0 {
		t.Fatal("expected note ID to be set")
	}

	found, err := repo.GetByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Title != "Groceries" || found.Content != "milk, eggs" || found.UserID != user.ID {
		t.Fatalf("unexpected note %+v", found)
	}
}

func TestNoteRepository_Create_UnknownOwner(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewNoteRepository(db)

	err := repo.Create(context.Background(), &domain.Note{UserID: 777, Title: "t", Content: "c"})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown owner")
	}
}

func TestNoteRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")

	for _, title := range []string{"first", "second"} {
		if err := repo.Create(ctx, &domain.Note{UserID: alice.ID, Title: title, Content: "x"}); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}
	if err := repo.Create(ctx, &domain.Note{UserID: bob.ID, Title: "bob's", Content: "x"}); err != nil {
		t.Fatalf("Create bob's: %v", err)
	}

	notes, err := repo.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "second" {
		t.Fatalf("expected newest note first, got %q", notes[0].Title)
	}
	for _, n := range notes {
		if n.UserID != alice.ID {
			t.Fatalf("listed note %d belongs to user %d", n.ID, n.UserID)
		}
	}
}

func TestNoteRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "editor", "editor@example.com")
	note := &domain.Note{UserID: user.ID, Title: "old", Content: "old body"}
	if err := repo.Create(ctx, note); err != nil {
		t.Fatalf("Create: %v", err)
	}

	note.Title = "new"
	note.Content = "new body"
	if err := repo.Update(ctx, note); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := repo.GetByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Title != "new" || found.Content != "new body" {
		t.Fatalf("update not persisted: %+v", found)
	}
}

func TestNoteRepository_DeleteAndNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewNoteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "deleter", "deleter@example.com")
	note := &domain.Note{UserID: user.ID, Title: "bye", Content: "x"}
	if err := repo.Create(ctx, note); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, note.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
	if err := repo.Update(ctx, note); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating deleted note, got %v", err)
	}
}

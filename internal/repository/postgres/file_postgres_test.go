package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"filevault/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var fileCols = []string{"id", "user_id", "name", "storage_key", "size", "mime_type", "created_at", "updated_at"}

func TestFilePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	f := &model.File{
		ID:         "file-1",
		UserID:     "user-1",
		Name:       "report.pdf",
		StorageKey: "files/user-1/2026/09/01/abc123def456_report.pdf",
		Size:       2048,
		MimeType:   "application/pdf",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	rows := sqlmock.NewRows(fileCols).
		AddRow(f.ID, f.UserID, f.Name, f.StorageKey, f.Size, f.MimeType, f.CreatedAt, f.UpdatedAt)

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(f.ID, f.UserID, f.Name, f.StorageKey, f.Size, f.MimeType, f.CreatedAt, f.UpdatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, f)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, f.ID, result.ID)
	assert.Equal(t, f.StorageKey, result.StorageKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_FindByIDAndOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(fileCols).
			AddRow("file-1", "user-1", "a.txt", "files/user-1/k", 10, "text/plain", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = \\$1 AND user_id = \\$2").
			WithArgs("file-1", "user-1").
			WillReturnRows(rows)

		f, err := repo.FindByIDAndOwner(ctx, "file-1", "user-1")

		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, "file-1", f.ID)
		assert.Equal(t, "user-1", f.UserID)
	})

	t.Run("wrong owner scans as not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = \\$1 AND user_id = \\$2").
			WithArgs("file-1", "user-2").
			WillReturnError(sql.ErrNoRows)

		f, err := repo.FindByIDAndOwner(ctx, "file-1", "user-2")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, f)
	})
}

func TestFilePostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("without search", func(t *testing.T) {
		rows := sqlmock.NewRows(fileCols).
			AddRow("file-2", "user-1", "b.txt", "files/user-1/k2", 20, "text/plain", time.Now(), time.Now()).
			AddRow("file-1", "user-1", "a.txt", "files/user-1/k1", 10, "text/plain", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM files WHERE user_id = \\$1 ORDER BY created_at DESC").
			WithArgs("user-1").
			WillReturnRows(rows)

		items, err := repo.ListByOwner(ctx, "user-1", "")

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "file-2", items[0].ID)
	})

	t.Run("with search term", func(t *testing.T) {
		rows := sqlmock.NewRows(fileCols).
			AddRow("file-1", "user-1", "report.pdf", "files/user-1/k1", 10, "application/pdf", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM files WHERE user_id = \\$1 AND name ILIKE").
			WithArgs("user-1", "rep").
			WillReturnRows(rows)

		items, err := repo.ListByOwner(ctx, "user-1", "rep")

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "report.pdf", items[0].Name)
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE user_id = \\$1 ORDER BY created_at DESC").
			WithArgs("user-9").
			WillReturnRows(sqlmock.NewRows(fileCols))

		items, err := repo.ListByOwner(ctx, "user-9", "")

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Len(t, items, 0)
	})
}

func TestFilePostgres_UpdateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("renamed", func(t *testing.T) {
		mock.ExpectExec("UPDATE files").
			WithArgs("file-1", "user-1", "new.pdf", now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateName(ctx, "file-1", "user-1", "new.pdf", now)
		assert.NoError(t, err)
	})

	t.Run("no matching row", func(t *testing.T) {
		mock.ExpectExec("UPDATE files").
			WithArgs("file-1", "user-2", "new.pdf", now).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateName(ctx, "file-1", "user-2", "new.pdf", now)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestFilePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM files WHERE id = ?").
		WithArgs("file-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "file-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

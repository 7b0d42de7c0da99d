package postgres

import (
	"context"
	"database/sql"
	"time"

	"filevault/internal/model"
	"filevault/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, user_id, name, storage_key, size, mime_type, created_at, updated_at`

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, f *model.File) (*model.File, error) {
	const q = `
		INSERT INTO files (id, user_id, name, storage_key, size, mime_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.UserID,
		f.Name,
		f.StorageKey,
		f.Size,
		f.MimeType,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return scanFile(row)
}

// FindByIDAndOwner fetches a single file scoped to both id and owner.
// The combined filter is the ownership check: a row another user owns scans
// identically to a row that does not exist.
func (r *FilePostgres) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.File, error) {
	const q = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, q, id, ownerID)
	return scanFile(row)
}

// ListByOwner returns the owner's files newest first, optionally filtered by a
// case-insensitive substring match on name.
//
// The search term is interpolated into the ILIKE pattern without escaping % or _,
// so users can widen their own matches with wildcards. This is intentional; the
// pattern only ever runs against rows already filtered to user_id.
func (r *FilePostgres) ListByOwner(ctx context.Context, ownerID, search string) ([]model.File, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if search != "" {
		const q = `
			SELECT ` + fileColumns + `
			FROM files
			WHERE user_id = $1 AND name ILIKE '%' || $2 || '%'
			ORDER BY created_at DESC
		`
		rows, err = r.db.QueryContext(ctx, q, ownerID, search)
	} else {
		const q = `
			SELECT ` + fileColumns + `
			FROM files
			WHERE user_id = $1
			ORDER BY created_at DESC
		`
		rows, err = r.db.QueryContext(ctx, q, ownerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		var f model.File
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.Name,
			&f.StorageKey,
			&f.Size,
			&f.MimeType,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateName renames the row matching both id and owner and bumps updated_at.
func (r *FilePostgres) UpdateName(ctx context.Context, id, ownerID, name string, updatedAt time.Time) error {
	const q = `
		UPDATE files
		SET name = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, q, id, ownerID, name, updatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a file row by id. It does not return an error if the row does
// not exist; the service already verified ownership via FindByIDAndOwner.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func scanFile(row *sql.Row) (*model.File, error) {
	var f model.File
	if err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.Name,
		&f.StorageKey,
		&f.Size,
		&f.MimeType,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

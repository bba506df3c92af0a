package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

const filesTable = "files"

// metadataColumns is every column except the payload, in scan order.
var metadataColumns = []string{
	"id",
	"filename",
	"original_name",
	"mimetype",
	"size",
	"uploaded_by_id",
	"created_at",
	"updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new file row including its payload.
func (r *PGRepo) Create(ctx context.Context, f File) error {
	query, args, err := psql.Insert(filesTable).
		Columns("id", "filename", "original_name", "mimetype", "size", "data", "uploaded_by_id", "created_at", "updated_at").
		Values(f.ID, f.Filename, f.OriginalName, f.MimeType, f.Size, f.Data, nullableString(f.UploadedByID), f.CreatedAt, f.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// GetByID fetches a file by id, optionally including the payload.
func (r *PGRepo) GetByID(ctx context.Context, id string, withData bool) (File, error) {
	cols := metadataColumns
	if withData {
		cols = append(append([]string(nil), metadataColumns...), "data")
	}
	query, args, err := psql.Select(cols...).
		From(filesTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return File{}, fmt.Errorf("build select: %w", err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	var f File
	if withData {
		err = scanFile(row, &f, &f.Data)
	} else {
		err = scanFile(row, &f)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return File{}, ErrNotFound
		}
		return File{}, err
	}
	return f, nil
}

// List returns one page of metadata ordered newest first and the total match count.
func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]File, int, error) {
	where := buildListWhere(filter)

	dataQuery := psql.Select(metadataColumns...).
		From(filesTable).
		OrderBy("created_at DESC", "id DESC")
	if where != nil {
		dataQuery = dataQuery.Where(where)
	}
	if filter.Limit > 0 {
		dataQuery = dataQuery.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		dataQuery = dataQuery.Offset(uint64(filter.Offset))
	}
	query, args, err := dataQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []File{}
	for rows.Next() {
		var f File
		if err := scanFile(rows, &f); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := psql.Select("COUNT(*)").From(filesTable)
	if where != nil {
		countQuery = countQuery.Where(where)
	}
	query, args, err = countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update applies a metadata patch and returns the row as stored.
func (r *PGRepo) Update(ctx context.Context, id string, patch UpdateInput, updatedAt time.Time) (File, error) {
	builder := psql.Update(filesTable).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(metadataColumns, ", "))
	if patch.Filename != nil {
		builder = builder.Set("filename", *patch.Filename)
	}
	if patch.OriginalName != nil {
		builder = builder.Set("original_name", *patch.OriginalName)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return File{}, fmt.Errorf("build update: %w", err)
	}

	var f File
	if err := scanFile(r.DB.QueryRowContext(ctx, query, args...), &f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return File{}, ErrNotFound
		}
		return File{}, classifyWriteError(err)
	}
	return f, nil
}

// Delete hard-deletes a file row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(filesTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func buildListWhere(filter ListFilter) sq.Sqlizer {
	var conds sq.And
	if filter.MimeType != "" {
		conds = append(conds, sq.Eq{"mimetype": filter.MimeType})
	}
	if filter.UploadedByID != "" {
		conds = append(conds, sq.Eq{"uploaded_by_id": filter.UploadedByID})
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"filename": pattern},
			sq.ILike{"original_name": pattern},
		})
	}
	if len(conds) == 0 {
		return nil
	}
	return conds
}

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner, f *File, extra ...any) error {
	var uploadedBy sql.NullString
	dest := []any{
		&f.ID,
		&f.Filename,
		&f.OriginalName,
		&f.MimeType,
		&f.Size,
		&uploadedBy,
		&f.CreatedAt,
		&f.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if uploadedBy.Valid {
		id := uploadedBy.String
		f.UploadedByID = &id
	}
	return nil
}

// classifyWriteError maps constraint violations to ErrInvalidInput.
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: filename already exists", ErrInvalidInput)
	case "23503": // foreign_key_violation
		return fmt.Errorf("%w: uploadedById does not reference an existing user", ErrInvalidInput)
	case "23514", "22P02", "22001": // check_violation, invalid_text_representation, string_data_right_truncation
		return fmt.Errorf("%w: file record rejected by store", ErrInvalidInput)
	default:
		return err
	}
}

func nullableString(value *string) any {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}

var _ Repo = (*PGRepo)(nil)

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nodex/internal/domain/record"

	"golang.org/x/exp/slog"
)

type RecordRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRecordRepository(db *sql.DB, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log.With("component", "record_repository"),
	}
}

const recordColumns = `id, kind, owner_id, author, data, file_path, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func (r *RecordRepository) List(ctx context.Context, kind, ownerID string) ([]record.Document, error) {
	const query = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE kind = ? AND owner_id = ?
		ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, kind, ownerID)
	if err != nil {
		r.log.Error("failed to list records", "kind", kind, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	docs := make([]record.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return docs, nil
}

func (r *RecordRepository) Get(ctx context.Context, kind, id string) (record.Document, error) {
	const query = `SELECT ` + recordColumns + ` FROM records WHERE kind = ? AND id = ?`
	return r.getOne(ctx, query, kind, id)
}

func (r *RecordRepository) FindByOwner(ctx context.Context, kind, ownerID string) (record.Document, error) {
	const query = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE kind = ? AND owner_id = ?
		ORDER BY rowid
		LIMIT 1`
	return r.getOne(ctx, query, kind, ownerID)
}

func (r *RecordRepository) getOne(ctx context.Context, query, kind, key string) (record.Document, error) {
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, kind, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.Document{}, record.ErrNotFound
		}
		r.log.Error("failed to get record", "kind", kind, "key", key, "error", err)
		return record.Document{}, fmt.Errorf("get record: %w", err)
	}
	return doc, nil
}

func (r *RecordRepository) Insert(ctx context.Context, doc record.Document) error {
	const query = `
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Kind, doc.OwnerID, doc.Author, string(doc.Data), nullable(doc.FilePath),
		doc.CreatedAt.UTC(), doc.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return record.ErrConflict
		}
		r.log.Error("failed to insert record", "kind", doc.Kind, "owner_id", doc.OwnerID, "error", err)
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Update(ctx context.Context, doc record.Document) error {
	const query = `
		UPDATE records
		SET author = ?, data = ?, file_path = ?, updated_at = ?
		WHERE kind = ? AND id = ?`

	res, err := r.db.ExecContext(ctx, query,
		doc.Author, string(doc.Data), nullable(doc.FilePath), doc.UpdatedAt.UTC(), doc.Kind, doc.ID)
	if err != nil {
		r.log.Error("failed to update record", "kind", doc.Kind, "id", doc.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}
	return expectOne(res)
}

func (r *RecordRepository) Delete(ctx context.Context, kind, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		r.log.Error("failed to delete record", "kind", kind, "id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return record.ErrNotFound
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func scanDocument(row scanner) (record.Document, error) {
	var (
		doc  record.Document
		data string
		file sql.NullString
	)
	err := row.Scan(&doc.ID, &doc.Kind, &doc.OwnerID, &doc.Author, &data, &file, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return record.Document{}, err
	}
	doc.Data = []byte(data)
	if file.Valid {
		doc.FilePath = &file.String
	}
	return doc, nil
}

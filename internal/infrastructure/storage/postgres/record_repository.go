package postgres

import (
	"context"
	"errors"
	"fmt"

	"nodex/internal/domain/record"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type RecordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRecordRepository(pool *pgxpool.Pool, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		pool: pool,
		log:  log.With("component", "record_repository"),
	}
}

const recordColumns = `id, kind, owner_id, author, data, file_path, created_at, updated_at`

func (r *RecordRepository) List(ctx context.Context, kind, ownerID string) ([]record.Document, error) {
	const query = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE kind = $1 AND owner_id = $2
		ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, kind, ownerID)
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
	const query = `SELECT ` + recordColumns + ` FROM records WHERE kind = $1 AND id = $2`
	return r.getOne(ctx, query, kind, id)
}

func (r *RecordRepository) FindByOwner(ctx context.Context, kind, ownerID string) (record.Document, error) {
	const query = `
		SELECT ` + recordColumns + `
		FROM records
		WHERE kind = $1 AND owner_id = $2
		ORDER BY seq
		LIMIT 1`
	return r.getOne(ctx, query, kind, ownerID)
}

func (r *RecordRepository) getOne(ctx context.Context, query, kind, key string) (record.Document, error) {
	doc, err := scanDocument(r.pool.QueryRow(ctx, query, kind, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.Kind, doc.OwnerID, doc.Author, doc.Data, doc.FilePath, doc.CreatedAt, doc.UpdatedAt)
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
		SET author = $1, data = $2, file_path = $3, updated_at = $4
		WHERE kind = $5 AND id = $6`

	tag, err := r.pool.Exec(ctx, query, doc.Author, doc.Data, doc.FilePath, doc.UpdatedAt, doc.Kind, doc.ID)
	if err != nil {
		r.log.Error("failed to update record", "kind", doc.Kind, "id", doc.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, kind, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		r.log.Error("failed to delete record", "kind", kind, "id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (record.Document, error) {
	var doc record.Document
	err := row.Scan(&doc.ID, &doc.Kind, &doc.OwnerID, &doc.Author, &doc.Data, &doc.FilePath, &doc.CreatedAt, &doc.UpdatedAt)
	return doc, err
}

package record

import (
	"context"
	"io"

	"nodex/internal/domain/user"
)

// Store - хранилище документов всех видов.
type Store interface {
	// List возвращает документы владельца в порядке вставки.
	List(ctx context.Context, kind, ownerID string) ([]Document, error)
	Get(ctx context.Context, kind, id string) (Document, error)
	FindByOwner(ctx context.Context, kind, ownerID string) (Document, error)
	// Insert возвращает ErrConflict, если нарушен уникальный индекс единственной записи.
	Insert(ctx context.Context, doc Document) error
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, kind, id string) error
}

// Files - хранилище вложений.
type Files interface {
	Store(ctx context.Context, dir, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (user.User, error)
}

package user

import (
	"context"
)

// Repository - хранилище учетных данных. Уникальность email гарантирует само хранилище:
// нарушение возвращается как ErrDuplicateEmail, отсутствие записи как ErrNotFound.
type Repository interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}

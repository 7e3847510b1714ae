// Package store defines the per-entity persistence repositories and their
// SurrealDB and in-memory implementations. Services depend on the
// interfaces only; the backing implementation is chosen by constructor
// injection.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports that a referenced entity id does not resolve to a
// stored record.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	AddWriting(ctx context.Context, userID, writingID string) error
	RemoveWriting(ctx context.Context, userID, writingID string) error
}

type WritingStore interface {
	FindByID(ctx context.Context, id string) (Writing, error)
	FindByAuthor(ctx context.Context, userID string, filter StateFilter) ([]Writing, error)
	Create(ctx context.Context, writing Writing) (Writing, error)
	Update(ctx context.Context, id string, update WritingUpdate) (Writing, error)
	SetBlocks(ctx context.Context, id string, blockIDs []string) error
	AddBlock(ctx context.Context, id, blockID string) error
	RemoveBlock(ctx context.Context, id, blockID string) error
	Delete(ctx context.Context, id string) (Writing, error)
}

type BlockStore interface {
	FindByID(ctx context.Context, id string) (Block, error)
	FindByIDs(ctx context.Context, ids []string) ([]Block, error)
	Create(ctx context.Context, block Block) (Block, error)
	Replace(ctx context.Context, id string, block Block) (Block, error)
	DeleteByIDs(ctx context.Context, ids []string) error
}

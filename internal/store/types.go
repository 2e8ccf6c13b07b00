package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// DuplicateKeyError is returned when a create or update violates a unique
// constraint. Message is the driver's description of the violated index.
type DuplicateKeyError struct {
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s", e.Message)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// Mentions reports whether the violated constraint refers to column.
func (e *DuplicateKeyError) Mentions(column string) bool {
	return strings.Contains(e.Message, column)
}

// Filter is a conjunction of column equality predicates.
type Filter map[string]any

// Patch maps column names to their new values.
type Patch map[string]any

type SortField struct {
	Column string
	Desc   bool
}

type FindOptions struct {
	Sort   []SortField
	Limit  int
	Offset int
}

// Records is a generic record store over a single entity collection.
type Records[T any] interface {
	FindOne(ctx context.Context, filter Filter) (*T, error)
	FindMany(ctx context.Context, filter Filter, opts FindOptions) ([]*T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, filter Filter, patch Patch) (*T, error)
}

// Store is a typed key-value store with expiring entries.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, val T, expiresIn time.Duration) error
	Delete(ctx context.Context, key string) error
	Take(ctx context.Context, key string) (T, error)
}

package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

type store[T any] struct {
	storage fiber.Storage
	prefix  string
}

func (s *store[T]) Get(ctx context.Context, key string) (T, error) {
	var obj T
	data, err := s.storage.Get(s.prefix + key)
	if err != nil {
		return obj, err
	}
	if data == nil {
		return obj, ErrNotFound
	}
	err = json.Unmarshal(data, &obj)
	return obj, err
}

func (s *store[T]) Set(ctx context.Context, key string, val T, expiresIn time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.storage.Set(s.prefix+key, data, expiresIn)
}

func (s *store[T]) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(s.prefix + key)
}

// Take returns the value stored at key and removes it.
func (s *store[T]) Take(ctx context.Context, key string) (T, error) {
	obj, err := s.Get(ctx, key)
	if err != nil {
		return obj, err
	}
	return obj, s.Delete(ctx, key)
}

func New[T any](storage fiber.Storage, keyPrefix string) Store[T] {
	return &store[T]{
		storage: storage,
		prefix:  keyPrefix,
	}
}

package users

import (
	"context"
	"errors"

	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/model"
)

const (
	ColUserID    = "id"
	ColUserEmail = "email"
	ColUserRole  = "role"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Updates(ctx context.Context, id uint, columns map[string]any) (*model.User, error)
}

type userRepository struct {
	records store.Records[model.User]
}

func translateError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return ErrEmailRegisterd
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := r.records.FindOne(ctx, store.Filter{ColUserID: id})
	return user, translateError(err)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := r.records.FindOne(ctx, store.Filter{ColUserEmail: email})
	return user, translateError(err)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translateError(r.records.Create(ctx, user))
}

func (r *userRepository) Updates(ctx context.Context, id uint, columns map[string]any) (*model.User, error) {
	user, err := r.records.Update(ctx, store.Filter{ColUserID: id}, store.Patch(columns))
	return user, translateError(err)
}

func NewUserRepository(records store.Records[model.User]) UserRepository {
	return &userRepository{records}
}

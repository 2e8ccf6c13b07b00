package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/params"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "user"
	RoleAdmin = params.DefaultAdminRole
)

// CreateHook observes user creation. BeforeCreateUser may veto the record by
// returning an error; AfterCreateUser runs once the record is persisted.
type CreateHook interface {
	BeforeCreateUser(ctx context.Context, user *model.User) error
	AfterCreateUser(ctx context.Context, user *model.User) error
}

type CreateUserOptions struct {
	Name      string
	Email     string
	Password  string
	Role      string
	Anonymous bool
	SkipHooks bool
}

type UserService struct {
	userRepo UserRepository
	hooks    []CreateHook
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AddCreateHook registers hooks in the order they should run.
func (s *UserService) AddCreateHook(hooks ...CreateHook) {
	s.hooks = append(s.hooks, hooks...)
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	return s.userRepo.FindByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) UserExists(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) Authenticate(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidEmail) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, opts CreateUserOptions) (*model.User, error) {
	email := normalizeEmail(opts.Email)
	if !opts.Anonymous {
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			return nil, ErrInvalidEmail
		}
	}

	var passwordHash []byte
	if opts.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	role := opts.Role
	if role == "" {
		role = RoleUser
	}
	user := model.User{
		Name:        opts.Name,
		Email:       email,
		Password:    string(passwordHash),
		Role:        role,
		IsAnonymous: opts.Anonymous,
	}

	if !opts.SkipHooks {
		for _, hook := range s.hooks {
			if err := hook.BeforeCreateUser(ctx, &user); err != nil {
				return nil, err
			}
		}
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}

	if !opts.SkipHooks {
		for _, hook := range s.hooks {
			if err := hook.AfterCreateUser(ctx, &user); err != nil {
				slog.Error("After create user hook failed", "userID", user.ID, "email", user.Email, "error", err)
			}
		}
	}
	return &user, nil
}

// CreateAnonymousUser creates a user flagged as anonymous under a unique
// placeholder email address.
func (s *UserService) CreateAnonymousUser(ctx context.Context) (*model.User, error) {
	id := model.GenerateID()
	return s.CreateUser(ctx, CreateUserOptions{
		Name:      "Anonymous",
		Email:     fmt.Sprintf("anon-%d@%s", id, params.AnonymousEmailDomain),
		Anonymous: true,
	})
}

// GetOrCreateUser returns the user registered with email, creating one when
// none exists. Used by federated sign in.
func (s *UserService) GetOrCreateUser(ctx context.Context, opts CreateUserOptions) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(opts.Email))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	return s.CreateUser(ctx, opts)
}

func NewUserService(userRepo UserRepository, hooks ...CreateHook) *UserService {
	return &UserService{
		userRepo: userRepo,
		hooks:    hooks,
	}
}

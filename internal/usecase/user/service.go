package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/observability/logging"
	"duo-blog/internal/observability/metrics"
	"duo-blog/internal/observability/tracing"
	"duo-blog/internal/repository"
)

const (
	DefaultMinPasswordLength = 8
	DefaultBcryptCost        = bcrypt.DefaultCost
)

// RegisterInput is the sign-up form. Password is limited to 72 bytes, the
// most bcrypt will hash.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=50"`
	Age      int    `json:"age" validate:"min=0,max=150"`
	Password string `json:"password" validate:"required,password,maxbytes=72"`
}

type Options struct {
	MinPasswordLength int
	BcryptCost        int
}

type Service struct {
	Repo     repository.UserRepository
	validate *inputValidator
	cost     int
}

// NewService applies defaults to zero Options fields.
func NewService(repo repository.UserRepository, opts Options) *Service {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = DefaultMinPasswordLength
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = DefaultBcryptCost
	}
	return &Service{
		Repo:     repo,
		validate: newInputValidator(opts.MinPasswordLength),
		cost:     opts.BcryptCost,
	}
}

// Register validates in, rejects taken emails and stores the user with a
// bcrypt password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "user.Register")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("register user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Email:        in.Email,
		Name:         in.Name,
		Age:          in.Age,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent sign-up
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrDuplicateEmail
		}
		span.RecordError(err)
		return nil, fmt.Errorf("register user: %w", err)
	}

	metrics.RecordUserRegistered()
	logging.FromContext(ctx).Info("user registered", slog.Int64("user_id", u.ID))
	return u, nil
}

// Get returns ErrUserNotFound for unknown or non-positive ids.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

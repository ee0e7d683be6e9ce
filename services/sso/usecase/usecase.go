package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meetscribe/backend/pkg/jwt"
	"github.com/meetscribe/backend/services/sso/entity"
	"github.com/meetscribe/backend/services/sso/storage"
	"golang.org/x/crypto/bcrypt"
)

type Usecase interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.RegisterResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
}

type usecase struct {
	jwtSecret string
	storage   storage.Storage
}

func New(jwtSecret string, storage storage.Storage) Usecase {
	return &usecase{
		jwtSecret: jwtSecret,
		storage:   storage,
	}
}

func (u *usecase) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.RegisterResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	user, err := u.storage.CreateUser(ctx, &entity.User{
		Email:        req.Email,
		Name:         name,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(ctx, user.ID, u.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &entity.RegisterResponse{
		Token: token,
		User:  user,
	}, nil
}

func (u *usecase) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := u.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := jwt.Generate(ctx, user.ID, u.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &entity.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

func (u *usecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return u.storage.GetUserByID(ctx, id)
}

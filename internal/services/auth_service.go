package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nimbushr/hrms/internal/models"
	mongorepo "github.com/nimbushr/hrms/internal/repositories/mongo"
	"github.com/nimbushr/hrms/internal/utils"
)

// TokenTTL is how long issued bearer tokens stay valid.
const TokenTTL = 2 * time.Hour

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Verify(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users  mongorepo.UserRepository
	secret []byte
}

func NewAuthService(users mongorepo.UserRepository, secret string) AuthService {
	return &authService{users: users, secret: []byte(secret)}
}

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "AuthService.Register"

	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "user already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return u, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "AuthService.Login"

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "invalid credentials", nil)
	}
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "invalid credentials", nil)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return u, token, nil
}

func (s *authService) Verify(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.Verify"

	id, err := parseObjectID(userID)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
	}

	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

func (s *authService) issueToken(u *models.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

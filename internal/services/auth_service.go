package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/core"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence surface the auth layer needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error)
	GetUserByID(ctx context.Context, id int64) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	SaveUser(ctx context.Context, u core.User) (core.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserPatch carries the optional fields of a profile update.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// AuthService handles registration, credential checks and bearer tokens.
// Passwords are stored as bcrypt hashes and never returned to callers.
type AuthService struct {
	store  UserStore
	secret []byte
	ttl    time.Duration
}

func NewAuthService(store UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (core.User, error) {
	u := core.User{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}
	if password == "" {
		return core.User{}, core.ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, u.Name, u.Email, string(hash))
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and issues a signed bearer token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (core.User, string, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return core.User{}, "", core.ErrUnauthenticated
		}
		return core.User{}, "", fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return core.User{}, "", core.ErrUnauthenticated
	}

	token, err := s.issueToken(u)
	if err != nil {
		return core.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

func (s *AuthService) issueToken(u core.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken resolves a bearer token to the owning user's id, or
// core.ErrUnauthenticated for anything invalid or expired.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, core.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, core.ErrUnauthenticated
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, core.ErrUnauthenticated
	}
	return int64(sub), nil
}

// GetProfile returns the user's profile.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (core.User, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile applies the present patch fields; a changed password is
// re-hashed before it is stored.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, patch UserPatch) (core.User, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}

	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		u.Email = strings.TrimSpace(*patch.Email)
	}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return core.User{}, core.ErrEmptyPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return core.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	saved, err := s.store.SaveUser(ctx, u)
	if err != nil {
		return core.User{}, fmt.Errorf("save user: %w", err)
	}
	return saved, nil
}

// DeleteAccount removes the user record. Owned categories and expenses are
// left in place.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

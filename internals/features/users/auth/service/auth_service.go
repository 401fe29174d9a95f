package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userModel "personel_backend/internals/features/users/user/model"
	helperAuth "personel_backend/internals/helpers/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user inactive")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with letters and digits")
)

// UserStore is the slice of the auth repository the service needs.
type UserStore interface {
	FindUserByIdentifier(ctx context.Context, identifier string) (*userModel.UserModel, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hashed string) error
	BlacklistToken(ctx context.Context, rawToken string, expiresAt time.Time) error
}

type AuthService struct {
	Users  UserStore
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthService(users UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: secret, TTL: ttl, Now: time.Now}
}

type LoginResult struct {
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        *userModel.UserModel `json:"user"`
}

// Login checks the bcrypt hash and issues an access token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.Users.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// constant-ish time against user enumeration
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	tok, exp, err := helperAuth.SignAccessToken(s.Secret, user.ID, user.UserName, user.Role, user.RegionID, s.Now(), s.TTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: tok, ExpiresAt: exp, User: user}, nil
}

// Logout blacklists the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, rawToken string, expiresAt time.Time) error {
	if expiresAt.IsZero() {
		expiresAt = s.Now().Add(s.TTL)
	}
	return s.Users.BlacklistToken(ctx, rawToken, expiresAt)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.Users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.Users.UpdateUserPassword(ctx, userID, hashed)
}

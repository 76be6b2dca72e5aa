package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"PulseWatch/internal/models"
	"PulseWatch/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

type AuthService struct {
	userStore storage.UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

type AuthServiceConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthService(userStore storage.UserStore, cfg AuthServiceConfig, logger *slog.Logger) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		userStore: userStore,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  ttl,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password, email string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("username and password required")
	}

	existing, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to check username", "error", err, "username", username)
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", username)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", username)
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("username and password required")
	}

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to load user", "error", err, "username", username)
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", username)
	return user, token, nil
}

// Authenticate resolves a bearer token to its user, or nil when the token is
// invalid or the user no longer exists.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, nil
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, nil
	}

	user, err := s.userStore.GetByID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user by token: %w", err)
	}

	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/model"
	"go_5_flashcard_srs/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	cfg      *config.Config
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register は新しいユーザーを登録し、アクセストークンを返します
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process password.", "", errors.Join(model.ErrInternalServer, err))
	}

	user := &model.User{
		UserID:       uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	// 重複は一意制約で検出する
	if err := s.userRepo.Create(ctx, s.db, user); err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Warn("Email already registered")
			return nil, model.NewAppError("DUPLICATE_EMAIL", "A user with this email already exists.", "email", model.ErrConflict)
		}
		return nil, storageError("Failed to create user.", err)
	}

	resp, err := s.issue(user)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "user_id", user.UserID)
		return nil, err
	}

	logger.Info("User registered", "user_id", user.UserID)
	return resp, nil
}

// Login はユーザーを認証し、アクセストークンを返します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)

	invalid := model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password.", "", model.ErrUnauthorized)

	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, invalid
		}
		return nil, storageError("Failed to look up user.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", user.UserID)
		return nil, invalid
	}

	resp, err := s.issue(user)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "user_id", user.UserID)
		return nil, err
	}

	logger.Info("Login successful", "user_id", user.UserID)
	return resp, nil
}

func (s *authService) issue(user *model.User) (*model.AuthResponse, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.cfg.App.Name,
		Subject:   user.UserID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to issue token.", "", errors.Join(model.ErrInternalServer, err))
	}
	return &model.AuthResponse{Token: signedToken, User: model.NewUserResponse(user)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// storageError はリポジトリのエラーを ErrStorage として包みます
func storageError(message string, err error) error {
	return model.NewAppError("STORAGE_ERROR", message, "", errors.Join(model.ErrStorage, err))
}

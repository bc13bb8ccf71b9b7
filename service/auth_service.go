package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jewel-studio-api/config"
	"jewel-studio-api/logger"
	"jewel-studio-api/model"
	"jewel-studio-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenType = "refresh"

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so the response never reveals which check failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrIncorrectSecret    = errors.New("incorrect secret code")
	ErrMissingFields      = errors.New("all fields are required")
	// ErrInvalidRefreshToken covers malformed, tampered, expired, and
	// never-persisted refresh tokens alike.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrInvalidAccessToken  = errors.New("invalid or expired access token")
)

// TokenPair is the credential pair handed to a client after login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService owns password hashing, token issuance/verification, and the
// signup/login/refresh flows. Access and refresh tokens are signed with
// independent secrets and lifetimes from the injected configuration.
type AuthService struct {
	cfg       *config.Config
	userRepo  repository.IUserRepository
	tokenRepo repository.ITokenRepository
}

func NewAuthService(cfg *config.Config, userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// HashPassword applies a salted bcrypt hash with the configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Auth.BcryptCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether the password matches the stored hash.
// A mismatch is a normal false, not an error.
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateAccessToken signs a short-lived access token carrying the user's id
// and email.
func (s *AuthService) GenerateAccessToken(userID int, email string) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("failed to generate token: missing user data")
	}

	now := time.Now()
	claims := &model.AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.Auth.AccessTTLSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.AccessSecret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken signs a longer-lived refresh token for the user.
func (s *AuthService) GenerateRefreshToken(userID int) (string, error) {
	if userID == 0 {
		return "", errors.New("failed to generate token: missing user id")
	}

	now := time.Now()
	claims := &model.RefreshClaims{
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.Auth.RefreshTTLSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.RefreshSecret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign refresh token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken checks signature and expiry against the access secret.
func (s *AuthService) VerifyAccessToken(tokenString string) (*model.AccessClaims, error) {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Auth.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}

// VerifyRefreshToken checks signature and expiry against the refresh secret
// and requires the refresh type discriminator in the claims.
func (s *AuthService) VerifyRefreshToken(tokenString string) (*model.RefreshClaims, error) {
	claims := &model.RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Auth.RefreshSecret), nil
	})
	if err != nil || !token.Valid || claims.TokenType != refreshTokenType {
		return nil, ErrInvalidRefreshToken
	}
	return claims, nil
}

// Signup provisions a new admin user. Registration is gated by the configured
// secret code; no tokens are issued, the caller must log in afterwards.
func (s *AuthService) Signup(email, password, secretCode string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || secretCode == "" {
		return ErrMissingFields
	}
	if secretCode != s.cfg.Auth.SignupSecretCode {
		return ErrIncorrectSecret
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}

	logger.Log.WithField("user_id", user.ID).Info("New user signed up")
	return nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token is persisted so later refreshes can prove it was minted here.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Refresh exchanges a valid, persisted refresh token for a new token pair.
// The presented token must exist in the store: a token signed with a leaked
// secret but never issued by this system is rejected. The old token stays
// valid until its own expiry unless revoke-on-refresh is enabled.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.VerifyRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	stored, err := s.tokenRepo.GetByToken(refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(stored.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	if s.cfg.Auth.RevokeOnRefresh {
		if err := s.tokenRepo.DeleteByToken(refreshToken); err != nil {
			return nil, err
		}
	}

	return pair, nil
}

func (s *AuthService) issuePair(user *model.User) (*TokenPair, error) {
	accessToken, err := s.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	record := &model.RefreshToken{
		UserID: user.ID,
		Token:  refreshToken,
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation. Uniqueness is enforced by the store, not pre-checked.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

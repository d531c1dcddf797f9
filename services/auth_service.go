package services

import (
	"errors"

	"foot-match-service/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB     *gorm.DB
	Tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

func (s *AuthService) Register(email, password, name, role string) (*models.AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// The unique index on email decides, not a prior read.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrEmailExists
		}
		return nil, err
	}

	return s.authResult(&user)
}

// Login deliberately returns the same error for an unknown email and a
// wrong password, so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(email, password string) (*models.AuthResult, error) {
	var user models.User
	if err := s.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}
	return s.authResult(&user)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The user
// row is re-read so a fresh pair always reflects current identity fields.
func (s *AuthService) Refresh(refreshToken string) (*models.AuthResult, error) {
	userID, _, err := s.Tokens.Identity(refreshToken)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	return s.authResult(&user)
}

func (s *AuthService) authResult(user *models.User) (*models.AuthResult, error) {
	access, err := s.Tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Tokens.IssueRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.Tokens.AccessTokenTTLSeconds(),
		User:         user.Response(),
	}, nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/config"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/validation"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, in validation.Register) (*models.User, error)
	Login(db *gorm.DB, in validation.Login) (*models.User, string, error)
	GenerateToken(userID uint) (string, error)
	ParseToken(tokenStr string) (uint, error)
}

type AuthServiceImpl struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{cfg: cfg}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func (s *AuthServiceImpl) Register(db *gorm.DB, in validation.Register) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, apperrors.NewConflict("an account with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewInternal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		// a concurrent registration can beat the pre-check; the unique
		// index reports the same conflict
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("an account with this email already exists")
		}
		return nil, apperrors.NewInternal(err)
	}
	return &user, nil
}

// Login returns the same generic failure for an unknown email and a bad
// password, so the response never reveals which check failed.
func (s *AuthServiceImpl) Login(db *gorm.DB, in validation.Login) (*models.User, string, error) {
	var user models.User
	if err := db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.NewAuthentication("invalid email or password")
		}
		return nil, "", apperrors.NewInternal(err)
	}

	if !VerifyPassword(user.Password, in.Password) {
		return nil, "", apperrors.NewAuthentication("invalid email or password")
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperrors.NewInternal(err)
	}
	return &user, token, nil
}

func (s *AuthServiceImpl) GenerateToken(userID uint) (string, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     jti.String(),
		"iss":     s.cfg.TokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthServiceImpl) ParseToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithIssuer(s.cfg.TokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID < 1 {
		return 0, fmt.Errorf("token carries no user id")
	}
	return uint(rawID), nil
}

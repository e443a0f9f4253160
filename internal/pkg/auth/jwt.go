package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/estatecore/backend/internal/app/models"
)

// JWT errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrWrongPurpose = errors.New("token used for wrong purpose")
)

// Token purposes for email-bound tokens
const (
	PurposeVerifyEmail   = "verify-email"
	PurposeResetPassword = "reset-password"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	SessionExp      time.Duration
	VerificationExp time.Duration
	ResetExp        time.Duration
	TokenIssuer     string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// SessionClaims defines the content of a bearer session token
type SessionClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// EmailClaims defines the content of verification and reset tokens. The
// purpose keeps a reset token from passing as a verification token.
type EmailClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates the signed bearer token issued at login
func (s *JWTService) GenerateSessionToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.SessionExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to create session token: %w", err)
	}
	return signed, nil
}

// GenerateEmailToken creates a signed, time-boxed token bound to an email
// address, used for verification links and password reset links.
func (s *JWTService) GenerateEmailToken(email, purpose string) (string, error) {
	var exp time.Duration
	switch purpose {
	case PurposeVerifyEmail:
		exp = s.config.VerificationExp
	case PurposeResetPassword:
		exp = s.config.ResetExp
	default:
		return "", fmt.Errorf("unknown token purpose %q", purpose)
	}

	now := time.Now()
	claims := &EmailClaims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to create %s token: %w", purpose, err)
	}
	return signed, nil
}

// ValidateSessionToken validates a bearer token and returns its claims
func (s *JWTService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID <= 0 || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateEmailToken validates a verification or reset token and checks it
// was minted for the expected purpose.
func (s *JWTService) ValidateEmailToken(tokenString, purpose string) (*EmailClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &EmailClaims{}, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*EmailClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

// ResetTokenTTL returns the configured lifetime of password reset tokens
func (s *JWTService) ResetTokenTTL() time.Duration {
	return s.config.ResetExp
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(s.config.SecretKey), nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidToken
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}
	return authHeader, nil
}

package jwt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"roomboard/config"
	"roomboard/shared/constant"
	"roomboard/shared/timezone"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrMissingToken  = errors.New("authorization header is required")
	ErrMalformedAuth = errors.New("authorization header must start with 'Bearer '")
)

const (
	tokenTypeBearer      = "Bearer"
	generatedSecretBytes = 32
)

// Claims identify the staff member operating the board. They carry no permissions.
type Claims struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	jwt.RegisteredClaims
}

type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// JWT issues and validates staff session tokens.
type JWT interface {
	GenerateToken(staffID, staffName string) (*Token, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Service struct {
	issuer    string
	secret    []byte
	expireMin int
}

// New creates a new JWT service. Without JWT_ACCESS_SECRET a random per-process secret is used,
// so sessions neither survive a restart nor validate on another instance. Outside development
// that is reported as an error.
func New(cfg *config.Config) JWT {
	secret := []byte(cfg.JWT.AccessSecret)
	if len(secret) == 0 {
		event := log.Warn()
		if cfg.Server.Env != constant.ServerEnvDevelopment {
			event = log.Error()
		}

		event.Str("env", cfg.Server.Env).
			Msg("JWT access secret not set, generating an ephemeral one; staff sessions are only valid on this instance")

		secret = make([]byte, generatedSecretBytes)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal().Err(err).Msg("Failed to generate JWT secret")
		}
	}

	return &Service{
		issuer:    cfg.App.Name,
		secret:    secret,
		expireMin: cfg.JWT.AccessExpireMin,
	}
}

func (s *Service) GenerateToken(staffID, staffName string) (*Token, error) {
	issuedAt := timezone.Now()
	expiresAt := issuedAt.Add(time.Duration(s.expireMin) * time.Minute)
	tokenID := uuid.NewString()

	claims := Claims{
		StaffID:   staffID,
		StaffName: staffName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer,
			Subject:   staffID,
			ID:        tokenID,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		AccessToken: signedToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.expireMin * 60),
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateToken validates and parses a JWT token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.StaffID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingToken
	}

	const prefix = tokenTypeBearer + " "
	if len(authHeader) < len(prefix) || authHeader[:len(prefix)] != prefix {
		return "", ErrMalformedAuth
	}

	return authHeader[len(prefix):], nil
}

package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stayhub/config"
	"stayhub/shared/timezone"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingBearer = errors.New("authorization header must use the Bearer scheme")
)

const bearerPrefix = "Bearer "

// Kind separates access tokens from refresh tokens. Each kind is signed with its own secret.
type Kind string

const (
	AccessToken  Kind = "access"
	RefreshToken Kind = "refresh"
)

// Subject is the identity a token pair is issued for.
type Subject struct {
	UserID string
	Email  string
	Role   string
}

// Claims carries the subject in the registered "sub" claim and the token id in "jti".
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Kind  Kind   `json:"kind"`
	jwt.RegisteredClaims
}

func (c Claims) UserID() string {
	return c.Subject
}

func (c Claims) TokenID() string {
	return c.ID
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	Issue(subject Subject) (TokenPair, error)
	Validate(token string, kind Kind) (Claims, error)
}

type signer struct {
	cfg *config.Config
}

func New(cfg *config.Config) JWT {
	return &signer{cfg: cfg}
}

func (s *signer) Issue(subject Subject) (TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(subject, AccessToken, now)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(subject, RefreshToken, now)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.lifetime(AccessToken).Seconds()),
	}, nil
}

func (s *signer) Validate(token string, kind Kind) (Claims, error) {
	secret, err := s.secret(kind)
	if err != nil {
		return Claims{}, err
	}

	claims := Claims{}

	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.cfg.App.Name))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}

		return Claims{}, ErrInvalidToken
	}

	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.Kind != kind || claims.Subject == "" || claims.Email == "" {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}

func (s *signer) sign(subject Subject, kind Kind, issuedAt time.Time) (string, error) {
	secret, err := s.secret(kind)
	if err != nil {
		return "", err
	}

	claims := Claims{
		Email: subject.Email,
		Role:  subject.Role,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.UserID,
			Issuer:    s.cfg.App.Name,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetime(kind))),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *signer) secret(kind Kind) ([]byte, error) {
	switch kind {
	case AccessToken:
		return []byte(s.cfg.JWT.AccessSecret), nil
	case RefreshToken:
		return []byte(s.cfg.JWT.RefreshSecret), nil
	default:
		return nil, fmt.Errorf("unknown token kind %q", kind)
	}
}

func (s *signer) lifetime(kind Kind) time.Duration {
	if kind == RefreshToken {
		return time.Duration(s.cfg.JWT.RefreshExpireMin) * time.Minute
	}

	return time.Duration(s.cfg.JWT.AccessExpireMin) * time.Minute
}

// FromHeader returns the token carried by a "Bearer <token>" Authorization header.
func FromHeader(header string) (string, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrMissingBearer
	}

	return strings.TrimSpace(token), nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	accessIssuer  = "seltronik"
	refreshIssuer = "seltronik_refresh"
)

// Claims are the claims of both token kinds. The role is deliberately
// absent: it is read from the profile on every guarded request.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken      string    `json:"-"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"-"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	// RefreshID is the jti of RefreshToken, the key under which it is stored.
	RefreshID string `json:"-"`
}

// TokenService issues and validates session tokens.
type TokenService interface {
	IssuePair(subject, email string) (*TokenPair, error)
	ParseAccessToken(token string) (*Claims, error)
	ParseRefreshToken(token string) (*Claims, error)
}

// JWTService implements TokenService with HS256 signed JWTs.
type JWTService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

var _ TokenService = (*JWTService)(nil)

// NewJWTService creates a new JWT service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) *JWTService {
	return &JWTService{
		secret:        []byte(cfg.JWTSecretKey),
		accessExpiry:  cfg.AccessTokenExpiry,
		refreshExpiry: cfg.RefreshTokenExpiry,
		now:           time.Now,
		logger:        logger.Named("JWTService"),
	}
}

// IssuePair signs a new access token and a new refresh token for subject.
func (s *JWTService) IssuePair(subject, email string) (*TokenPair, error) {
	now := s.now()

	accessExp := now.Add(s.accessExpiry)
	access, err := s.sign(Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    accessIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not sign access token: %w", err)
	}

	jti, err := crypto.NewTokenID()
	if err != nil {
		return nil, fmt.Errorf("could not generate refresh token id: %w", err)
	}
	refreshExp := now.Add(s.refreshExpiry)
	refresh, err := s.sign(Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    refreshIssuer,
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
		RefreshID:        jti,
	}, nil
}

func (s *JWTService) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err), zap.String("issuer", claims.Issuer))
		return "", err
	}
	return signed, nil
}

// ParseAccessToken validates an access token.
func (s *JWTService) ParseAccessToken(token string) (*Claims, error) {
	return s.parse(token, accessIssuer)
}

// ParseRefreshToken validates a refresh token. It does not check whether the
// token is still stored; that is the RefreshStore's job.
func (s *JWTService) ParseRefreshToken(token string) (*Claims, error) {
	claims, err := s.parse(token, refreshIssuer)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("refresh token without id")
	}
	return claims, nil
}

func (s *JWTService) parse(tokenString, issuer string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/internal/utils"
	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateToken(userID string, role string) (string, error)
		ValidateToken(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (string, string, error)
	}

	sessionClaims struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

const defaultTTL = 7 * 24 * time.Hour

func NewJWTService() JWTService {
	ttl := defaultTTL
	if raw := utils.GetConfig("JWT_EXPIRES_IN"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}
	return &jwtService{
		secretKey: utils.GetConfig("JWT_SECRET"),
		issuer:    "CHAI-LELO",
		ttl:       ttl,
	}
}

func (j *jwtService) GenerateToken(userID string, role string) (string, error) {
	claims := sessionClaims{
		userID,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &sessionClaims{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (string, string, error) {
	parsed, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := parsed.Claims.(*sessionClaims)
	return claims.UserID, claims.Role, nil
}

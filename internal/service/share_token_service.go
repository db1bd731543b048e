package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrShareTokenInvalid = errors.New("share token invalid")
	ErrShareTokenExpired = errors.New("share token expired")
)

// ShareTokenService emite y valida tokens firmados para compartir un
// resultado en modo lectura sin exponer su passcode.
type ShareTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type ShareClaims struct {
	RecordID string `json:"rid"`
	jwt.RegisteredClaims
}

func NewShareTokenService(secret string, ttl time.Duration) *ShareTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ShareTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "purpose-finder",
	}
}

func (s *ShareTokenService) Issue(recordID string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(recordID) == "" {
		return "", ErrShareTokenInvalid
	}
	now := time.Now().UTC()
	claims := ShareClaims{
		RecordID: recordID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   recordID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *ShareTokenService) Parse(tokenString string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return "", ErrShareTokenInvalid
	}
	var claims ShareClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrShareTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrShareTokenExpired
		}
		return "", ErrShareTokenInvalid
	}
	if !token.Valid || claims.RecordID == "" || claims.Issuer != s.issuer {
		return "", ErrShareTokenInvalid
	}
	return claims.RecordID, nil
}

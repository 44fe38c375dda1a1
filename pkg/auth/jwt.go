package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Paudel3101/meditrack/internal/model"
)

// ErrInvalidToken is returned for every verification defect: malformed
// token, wrong signature, or expiry. The cause is deliberately not
// distinguished to the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the identity embedded in an access token.
type TokenClaims struct {
	StaffID   int64           `json:"id"`
	Email     string          `json:"email"`
	Role      model.StaffRole `json:"role"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	jwt.RegisteredClaims
}

type JWTService interface {
	Generate(staff *model.Staff) (string, error)
	Validate(token string) (*TokenClaims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) Generate(staff *model.Staff) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		StaffID:   staff.ID,
		Email:     staff.Email,
		Role:      staff.Role,
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtService) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || claims.StaffID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

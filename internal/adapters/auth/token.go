package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campusevents/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Role      string  `json:"role"`
	CollegeID *string `json:"college_id,omitempty"`
}

type jwtManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager returns a TokenIssuer/TokenVerifier pair that signs JWTs
// with HS256 using the given secret.
func NewJWTManager(secret string, expiry time.Duration) *jwtManager {
	return &jwtManager{secret: []byte(secret), expiry: expiry}
}

func (m *jwtManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
		Role:      user.Role,
		CollegeID: user.CollegeID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (m *jwtManager) Verify(tokenString string) (*domain.TokenClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return &domain.TokenClaims{
		UserID:    claims.Subject,
		Role:      claims.Role,
		CollegeID: claims.CollegeID,
	}, nil
}

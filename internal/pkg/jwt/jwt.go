package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// RoleCustomer marks tokens issued to clinic customers from the mobile app.
const RoleCustomer = "customer"

type Service struct {
	secret      []byte
	ttl         time.Duration
	customerTTL time.Duration
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	BranchID int64  `json:"branch_id,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret:      []byte(secret),
		ttl:         ttl,
		customerTTL: ttl,
	}
}

// WithCustomerTTL sets a separate lifetime for customer tokens.
func (s *Service) WithCustomerTTL(ttl time.Duration) *Service {
	s.customerTTL = ttl
	return s
}

func (s *Service) GenerateToken(userID int64, role string, branchID int64) (string, error) {
	ttl := s.ttl
	if role == RoleCustomer {
		ttl = s.customerTTL
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Role:     role,
		BranchID: branchID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}

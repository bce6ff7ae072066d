package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

// Issuer is the iss claim of every token this package signs.
const Issuer = "kitchenpos"

// clockSkew is tolerated between terminals when checking exp and nbf.
const clockSkew = 30 * time.Second

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Claims identify the staff member working a terminal session.
type Claims struct {
	StaffID string `json:"staff_id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Session is a signed token and the instant it stops being accepted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// JWTManager issues and verifies HS256 session tokens.
type JWTManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

// NewJWTManager creates a manager whose sessions last ttl, typically one shift.
func NewJWTManager(secretKey string, ttl time.Duration) *JWTManager {
	return newJWTManager(secretKey, ttl, time.Now)
}

func newJWTManager(secretKey string, ttl time.Duration, now func() time.Time) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
			jwt.WithTimeFunc(now),
		),
	}
}

// Issue signs a session token for staff.
func (m *JWTManager) Issue(staff *models.Staff) (Session, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		StaffID: staff.ID,
		Email:   staff.Email,
		Name:    staff.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staff.ID,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign token for staff %s: %w", staff.ID, err)
	}
	return Session{Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate verifies signature, issuer and lifetime and returns the claims.
// A token whose subject disagrees with its staff_id is rejected.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, err := m.parser.ParseWithClaims(tokenString, claims, m.key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.StaffID == "" || claims.Subject != claims.StaffID {
		return nil, fmt.Errorf("%w: subject does not match staff", ErrInvalidToken)
	}
	return claims, nil
}

func (m *JWTManager) key(*jwt.Token) (any, error) {
	return m.secretKey, nil
}

package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
)

// DefaultTokenTTL is the session token lifetime when none is configured.
const DefaultTokenTTL = time.Hour

var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token has expired")
)

var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// Claims is the JWT payload of a session token.
type Claims struct {
	UserID    int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsBlocked bool   `json:"isBlocked"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies session tokens with a process-wide secret.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration

	now func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTManager{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

func (m *JWTManager) clock() func() time.Time {
	if m.now == nil {
		return time.Now
	}
	return m.now
}

// Issue signs a token for id valid for the manager's TTL.
func (m *JWTManager) Issue(id entity.Identity) (string, time.Time, error) {
	return issueToken(id, m.Secret, m.TTL, m.clock()())
}

// Parse verifies token and returns the identity it carries.
func (m *JWTManager) Parse(token string) (*entity.Identity, error) {
	return parseToken(token, m.Secret, m.clock())
}

// IssueToken signs id with secret; the token expires ttl from now.
func IssueToken(id entity.Identity, secret []byte, ttl time.Duration) (string, time.Time, error) {
	return issueToken(id, secret, ttl, time.Now())
}

// ParseToken verifies signature first, then expiry, and returns one of
// ErrTokenMalformed, ErrTokenBadSignature or ErrTokenExpired on failure.
func ParseToken(token string, secret []byte) (*entity.Identity, error) {
	return parseToken(token, secret, time.Now)
}

func issueToken(id entity.Identity, secret []byte, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := &Claims{
		UserID:    id.UserID,
		Email:     id.Email,
		Role:      string(id.Role),
		IsBlocked: id.Blocked,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

func parseToken(tokenStr string, secret []byte, now func() time.Time) (*entity.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods(hmacMethods),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, classifyTokenError(tokenStr, err)
	}

	role, ok := entity.ParseRole(claims.Role)
	if claims.UserID <= 0 || !ok {
		return nil, fmt.Errorf("%w: invalid identity claims", ErrTokenMalformed)
	}
	return &entity.Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    role,
		Blocked: claims.IsBlocked,
	}, nil
}

func classifyTokenError(tokenStr string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed) && signatureSegmentFault(tokenStr):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// signatureSegmentFault reports whether a token that failed to parse has a
// well formed header and payload, leaving the signature segment at fault.
func signatureSegmentFault(tokenStr string) bool {
	if strings.Count(tokenStr, ".") != 2 {
		return false
	}
	_, _, err := jwt.NewParser(jwt.WithStrictDecoding()).ParseUnverified(tokenStr, &Claims{})
	return err == nil
}

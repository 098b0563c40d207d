package auth

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// Claims is the JWT payload for a session.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Session is the identity proof handed out by a successful login and
// resolved from the bearer token on every authenticated request.
type Session struct {
	UserID    uuid.UUID
	Email     string
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs and parses HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed session token for the user.
func (i *TokenIssuer) Issue(userID uuid.UUID, email string) (*Session, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, err
	}

	return &Session{
		UserID:    userID,
		Email:     email,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse verifies the token signature and expiry and returns its session.
func (i *TokenIssuer) Parse(tokenStr string) (*Session, error) {
	claims := &Claims{}
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.FromString(claims.Subject)
	if err != nil || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Session{
		UserID:    userID,
		Email:     claims.Email,
		Token:     tokenStr,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

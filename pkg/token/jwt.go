package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by every issued token.
type Claims struct {
	DoctorID int64 `json:"doctor_id"`
	LoggedIn bool  `json:"logged_in"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies signed login tokens. The signing secret is
// injected once at construction and never logged.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

func NewIssuer(secret string, expiry time.Duration) *Issuer {
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token carrying the doctor id and login state, expiring
// after the configured lifetime.
func (i *Issuer) Issue(doctorID int64, loggedIn bool) (string, error) {
	now := time.Now()
	claims := Claims{
		DoctorID: doctorID,
		LoggedIn: loggedIn,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry returns the configured token lifetime.
func (i *Issuer) Expiry() time.Duration {
	return i.expiry
}

// Package auth implements the stateless identity token service: HS256-signed
// JWTs binding a user's email (subject) to an expiry. Tokens are never
// persisted; revocation happens only through expiry or the subject email
// changing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mealy-app/backend/internal/common"
)

// Claims carries the registered claims plus advisory fields for client
// convenience. Authorization must only ever trust the verified subject;
// UID and UserName are not re-checked and must not drive access decisions.
type Claims struct {
	jwt.RegisteredClaims
	UID      int64  `json:"uid,omitempty"`
	UserName string `json:"userName,omitempty"`
}

// GenerateToken issues a signed token with the given email as subject,
// an issued-at of now and the configured validity duration.
func GenerateToken(email string, uid int64, userName string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UID:      uid,
		UserName: userName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ExtractSubject verifies the token's signature and expiry and returns the
// subject email. Every structural, signature or lifetime failure collapses
// into common.ErrInvalidToken; callers never see parser internals.
func ExtractSubject(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

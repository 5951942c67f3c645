/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

var (
	ErrTokenMissing = errors.New("access token missing")
	ErrTokenExpired = errors.New("jwt expired")
	ErrTokenInvalid = errors.New("access token invalid")
)

// Tokens issues and verifies HS256 access tokens. Tokens are handed out
// with the "Bearer " prefix and are expected back verbatim in the
// Authorization header.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a prefixed access token for the user.
func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}

	return bearerPrefix + signed, nil
}

// Verify checks an Authorization header value and returns the user id.
func (t *Tokens) Verify(header string) (string, error) {
	if header == "" {
		return "", ErrTokenMissing
	}

	raw, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", ErrTokenInvalid
	}

	claims := &jwt.RegisteredClaims{}

	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrTokenInvalid, token.Header["alg"])
		}

		return t.secret, nil
	}

	if _, err := jwt.ParseWithClaims(raw, claims, keyFunc, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired()); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}

		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}

/*
 * Copyright 2026 The ZoneSync Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package auth provides team session tokens and password verification for
// the reference server.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/pkg/errors"
)

var (
	// ErrUnexpectedSigningMethod is returned when the signing method is unexpected.
	ErrUnexpectedSigningMethod = fmt.Errorf("unexpected signing method")
)

// TeamClaims is a JWT claims struct for one team session. The role is baked
// into the token; a role change requires a new authentication.
type TeamClaims struct {
	jwt.StandardClaims

	TeamID string `json:"team_id"`
	Role   string `json:"role"`
}

// TokenManager manages JWT session tokens.
type TokenManager struct {
	secretKey     string
	tokenDuration time.Duration
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(secretKey string, tokenDuration time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
	}
}

// Generate generates a new session for the given team and role.
func (m *TokenManager) Generate(teamID types.ID, role types.Role) (types.Session, error) {
	expiresAt := time.Now().Add(m.tokenDuration)
	claims := TeamClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
		},
		TeamID: teamID.String(),
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return types.Session{}, fmt.Errorf("sign token: %w", err)
	}

	return types.Session{
		Token:     signedToken,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify verifies the given token. Expired or malformed tokens come back as
// unauthenticated errors so clients clear their stored session.
func (m *TokenManager) Verify(token string) (*TeamClaims, error) {
	claims := &TeamClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("%s: %w", token.Method.Alg(), ErrUnexpectedSigningMethod)
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, errors.Wrap(fmt.Errorf("parse token: %w", err), errors.ErrCodeUnauthenticated)
	}

	if !types.Role(claims.Role).Valid() {
		return nil, errors.Unauthenticated("unknown role in token")
	}

	return claims, nil
}

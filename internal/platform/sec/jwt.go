// Copyright (c) 2026 Atimus. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token minting, JWT
// signing) from the domain logic. It acts as an infrastructure service
// injected into the application layer via narrow interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atimus/edital-api/internal/platform/apperr"
)

// AdminClaims is the payload embedded inside an admin bearer token.
//
// Admin sessions are stateless: everything the middleware needs (subject,
// role, expiry) travels inside the signed token, so no server-side session
// row exists for admins.
type AdminClaims struct {
	jwt.RegisteredClaims

	// Role gates admin-only operations. Authorization is the CALLER's check
	// (claims.Role == RoleAdmin); this package only authenticates.
	Role string `json:"role"`
}

// TokenService signs and verifies admin bearer tokens using HS256.
type TokenService struct {
	secret string
	issuer string
}

// NewTokenService creates a TokenService.
//
// An empty secret is accepted on purpose: the process must boot without
// JWT_SECRET, and only admin-token operations fail when it is missing.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{secret: secret, issuer: issuer}
}

// signingKey returns the HMAC secret or a Configuration error on first use.
func (service *TokenService) signingKey() ([]byte, error) {
	if service.secret == "" {
		return nil, apperr.Configuration(errors.New("JWT_SECRET is not set"))
	}
	return []byte(service.secret), nil
}

// Issue signs a new bearer token for the given subject and role.
//
// Expiry is always now (UTC) + timeToLive; callers cannot smuggle their own
// exp claim in.
func (service *TokenService) Issue(subject, role string, timeToLive time.Duration) (string, error) {
	key, err := service.signingKey()
	if err != nil {
		return "", err
	}

	currentTime := time.Now().UTC()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, algorithm, and expiry of a bearer token.
//
// Every failure mode (bad signature, wrong algorithm, expired) collapses into
// the same Unauthorized error — the caller maps it to a single 401 with no
// detail about why verification failed.
func (service *TokenService) Verify(tokenString string) (*AdminClaims, error) {
	key, err := service.signingKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})

	if err != nil {
		return nil, apperr.Unauthorized("Token inválido ou expirado")
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("Token inválido ou expirado")
	}

	return claims, nil
}

// Copyright (c) 2026 Atimus. All rights reserved.

package clients

import "time"

// # Session & Token Lifetimes

const (
	// SessionTTL is how long a client session lives without activity.
	// Long-lived (30 days) to provide a good user experience.
	SessionTTL = 30 * 24 * time.Hour

	// SessionRenewalThreshold triggers rolling renewal: when a valid session
	// is used with less than this much time left, its expiry is pushed back
	// out to a full SessionTTL.
	SessionRenewalThreshold = 5 * 24 * time.Hour

	// VerifyTokenTTL is the validity window of the email verification link.
	// Long-lived (72 hours) as users might not check email immediately.
	VerifyTokenTTL = 72 * time.Hour

	// ResetTokenTTL is the validity window of a password reset token.
	// Short-lived (30 minutes) for security.
	ResetTokenTTL = 30 * time.Minute
)

// # Password Bounds

const (
	// PasswordMinLen and PasswordMaxLen bound the accepted password length.
	// Checked before any persistence access (cheap rejection).
	PasswordMinLen = 6
	PasswordMaxLen = 64
)

// # Cookies & Redirects

const (
	// SessionCookieName is the HTTP-only cookie that carries the session token.
	SessionCookieName = "session_token"

	// SessionCookiePath scopes the cookie to the whole API.
	SessionCookiePath = "/"

	// RedirectAfterLogin is the frontend destination returned in the login
	// response body.
	RedirectAfterLogin = "/editais.html"
)

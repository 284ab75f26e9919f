// Copyright (c) 2026 Atimus. All rights reserved.

package clients

import (
	"context"
	"log/slog"
	"time"

	"github.com/atimus/edital-api/internal/mailer"
	"github.com/atimus/edital-api/internal/platform/apperr"
	"github.com/atimus/edital-api/internal/platform/sec"
	"github.com/atimus/edital-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the client account lifecycle: signup, email
// verification, login, session introspection with rolling renewal, and the
// two-phase password reset.
//
// # Anti-Enumeration
//
// Login failures always surface the same generic credential error, and a
// reset request for an unknown email returns the same acknowledgement as for
// a known one. The precise reason is logged server-side only.
type Service struct {
	store  Store
	mailer mailer.Mailer
	links  *mailer.Links
	minter *sec.Minter
	logger *slog.Logger

	// now is swappable in tests; production always runs on UTC wall clock.
	now func() time.Time
}

// NewService creates the client lifecycle service.
func NewService(store Store, mail mailer.Mailer, links *mailer.Links, minter *sec.Minter, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		mailer: mail,
		links:  links,
		minter: minter,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SignupInput carries the validated signup form.
type SignupInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	TaxID          string
	TermsAccepted  bool
	MarketingOptIn bool
}

/*
Signup registers a new, unverified client account.

Description: Hashes the password, mints a verification token valid for 72
hours, persists the account atomically, and only after the commit attempts
to email the verification link. Email delivery failure never fails the
signup; the link is logged as a fallback.

Parameters:
  - ctx: context.Context
  - input: SignupInput (Already validated by the transport layer)

Returns:
  - *Account: The created account
  - error: apperr.Conflict on duplicate email/tax ID, or internal errors
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*Account, error) {
	now := service.now()

	// 1. Hash the password before touching storage.
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// 2. Mint the email verification token.
	verifyToken, err := sec.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	verifyExpiry := now.Add(VerifyTokenTTL)

	account := &Account{
		ID:                   uuid.New(),
		Name:                 input.Name,
		Email:                input.Email,
		Phone:                input.Phone,
		TaxID:                input.TaxID,
		PasswordHash:         passwordHash,
		EmailVerified:        false,
		EmailVerifyToken:     &verifyToken,
		EmailVerifyExpiresAt: &verifyExpiry,
		TermsAccepted:        input.TermsAccepted,
		MarketingOptIn:       input.MarketingOptIn,
		CreatedAt:            now,
	}

	// 3. Persist atomically (duplicate check + insert in one transaction).
	if err := service.store.Create(ctx, account); err != nil {
		return nil, err
	}

	// 4. Send the verification email strictly after the commit.
	service.deliver(ctx, mailer.KindVerification, account.Email, verifyToken)

	service.logger.InfoContext(ctx, "client_signup",
		slog.String("account_id", account.ID),
		slog.String("email", sec.MaskEmail(account.Email)),
	)

	return account, nil
}

/*
VerifyEmail consumes an email verification token.

Description: Idempotent for already-verified accounts. An unknown or expired
token yields the same invalid-or-expired error; the distinction is logged
server-side.

Parameters:
  - ctx: context.Context
  - rawToken: string (Token from the emailed link's query string)

Returns:
  - error: apperr.InvalidOrExpired, or internal errors
*/
func (service *Service) VerifyEmail(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return apperr.InvalidOrExpired("Token de verificação inválido ou expirado")
	}

	account, err := service.store.FindByVerifyToken(ctx, rawToken)
	if err != nil {
		if apperr.IsAppError(err) {
			service.logger.InfoContext(ctx, "verify_email_unknown_token")
			return apperr.InvalidOrExpired("Token de verificação inválido ou expirado")
		}
		return err
	}

	// Already verified: succeed without reprocessing.
	if account.EmailVerified {
		return nil
	}

	now := service.now()
	if account.EmailVerifyExpiresAt == nil || !account.EmailVerifyExpiresAt.After(now) {
		service.logger.InfoContext(ctx, "verify_email_expired_token",
			slog.String("account_id", account.ID),
		)
		return apperr.InvalidOrExpired("Token de verificação inválido ou expirado")
	}

	if err := service.store.MarkVerified(ctx, account.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "client_email_verified",
		slog.String("account_id", account.ID),
	)
	return nil
}

// Session pairs an authenticated account with its live session token.
type Session struct {
	Account   *Account
	Token     string
	ExpiresAt time.Time
}

/*
Login authenticates a client and establishes a fresh 30-day session.

Description: Unknown email and wrong password collapse into the same
credential error. An unverified email is refused explicitly so the frontend
can prompt the user to check their inbox. Establishing the session clears
any pending reset token in the same statement.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - *Session: The new session and its owner
  - error: apperr.Unauthorized, apperr.Forbidden, or internal errors
*/
func (service *Service) Login(ctx context.Context, email string, password string) (*Session, error) {
	now := service.now()

	// 1. Resolve the account; unknown email is indistinguishable from a
	//    wrong password on the wire.
	account, err := service.store.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsAppError(err) {
			service.logger.InfoContext(ctx, "client_login_unknown_email",
				slog.String("email", sec.MaskEmail(email)),
			)
			return nil, apperr.Unauthorized("Credenciais inválidas")
		}
		return nil, err
	}

	// 2. Verify the password.
	if !sec.CheckPassword(password, account.PasswordHash) {
		service.logger.InfoContext(ctx, "client_login_bad_password",
			slog.String("account_id", account.ID),
		)
		return nil, apperr.Unauthorized("Credenciais inválidas")
	}

	// 3. Refuse unverified accounts even with the right password.
	if !account.EmailVerified {
		return nil, apperr.Forbidden("E-mail não verificado. Verifique sua caixa de entrada.")
	}

	// 4. Mint and persist the session; any pending reset dies here.
	sessionToken, err := sec.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(SessionTTL)

	if err := service.store.EstablishSession(ctx, account.ID, sessionToken, expiresAt); err != nil {
		return nil, err
	}

	if account.HasActiveReset(now) {
		service.logger.InfoContext(ctx, "client_login_cleared_pending_reset",
			slog.String("account_id", account.ID),
		)
	}

	account.SessionToken = &sessionToken
	account.SessionExpiresAt = &expiresAt
	account.ResetTokenDigest = nil
	account.ResetExpiresAt = nil

	service.logger.InfoContext(ctx, "client_login",
		slog.String("account_id", account.ID),
	)

	return &Session{Account: account, Token: sessionToken, ExpiresAt: expiresAt}, nil
}

/*
WhoAmI resolves a session token to its account, renewing the session when it
is close to expiry.

Description: A session used with less than 5 days remaining is pushed back
out to a full 30 days (rolling renewal). Expired sessions are rejected but
not cleared; a later successful login simply overwrites them.

Parameters:
  - ctx: context.Context
  - sessionToken: string (From the session cookie)

Returns:
  - *Session: The account and the possibly-extended expiry
  - error: apperr.Unauthorized, apperr.Forbidden, or internal errors
*/
func (service *Service) WhoAmI(ctx context.Context, sessionToken string) (*Session, error) {
	if sessionToken == "" {
		return nil, apperr.Unauthorized("Não autenticado")
	}

	account, err := service.store.FindBySessionToken(ctx, sessionToken)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, apperr.Unauthorized("Não autenticado")
		}
		return nil, err
	}

	now := service.now()
	if account.SessionExpiresAt == nil || !account.SessionExpiresAt.After(now) {
		return nil, apperr.Unauthorized("Sessão expirada")
	}

	// Defense in depth: a session should never exist on an unverified
	// account, but refuse it if one does.
	if !account.EmailVerified {
		return nil, apperr.Forbidden("E-mail não verificado. Verifique sua caixa de entrada.")
	}

	expiresAt := *account.SessionExpiresAt

	// Rolling renewal when the session enters its final stretch.
	if expiresAt.Sub(now) < SessionRenewalThreshold {
		renewed := now.Add(SessionTTL)
		if err := service.store.ExtendSession(ctx, account.ID, sessionToken, renewed); err != nil {
			return nil, err
		}
		expiresAt = renewed
		account.SessionExpiresAt = &renewed

		service.logger.DebugContext(ctx, "client_session_renewed",
			slog.String("account_id", account.ID),
		)
	}

	return &Session{Account: account, Token: sessionToken, ExpiresAt: expiresAt}, nil
}

/*
RequestReset starts the password reset flow for an email address.

Description: Always acknowledges, whether or not the email is registered.
When the account already holds a valid reset token the request is a silent
no-op (anti-flood): no new token is minted into storage and no email is
sent, so the first link stays authoritative. The raw token travels only in
the email; storage sees its peppered digest.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - error: apperr.Configuration when the reset pepper is unset, or internal
    errors. Unknown emails are NOT an error.
*/
func (service *Service) RequestReset(ctx context.Context, email string) error {
	now := service.now()

	account, err := service.store.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsAppError(err) {
			service.logger.InfoContext(ctx, "reset_request_unknown_email",
				slog.String("email", sec.MaskEmail(email)),
			)
			return nil
		}
		return err
	}

	// 1. Mint the raw token and derive its storage digest.
	rawToken, err := sec.NewOpaqueToken()
	if err != nil {
		return err
	}
	digest, err := service.minter.DigestResetToken(rawToken)
	if err != nil {
		return err
	}

	// 2. Arm the digest; the store refuses while a valid token stands.
	armed, err := service.store.ArmResetToken(ctx, account.ID, digest, now.Add(ResetTokenTTL), now)
	if err != nil {
		return err
	}
	if !armed {
		service.logger.InfoContext(ctx, "reset_request_suppressed",
			slog.String("account_id", account.ID),
		)
		return nil
	}

	// 3. Email the raw token strictly after it is armed.
	service.deliver(ctx, mailer.KindReset, account.Email, rawToken)

	service.logger.InfoContext(ctx, "reset_request_issued",
		slog.String("account_id", account.ID),
	)
	return nil
}

/*
ConfirmReset completes the password reset flow with a raw token.

Description: The token lookup, expiry check, password update, token
clearing, and session invalidation are one atomic statement, making the
token single-use even under concurrent redemption attempts. The user must
log in again afterwards.

Parameters:
  - ctx: context.Context
  - rawToken: string (From the emailed link)
  - newPassword: string (Already length-validated by the transport layer)

Returns:
  - error: apperr.InvalidOrExpired, apperr.Configuration, or internal errors
*/
func (service *Service) ConfirmReset(ctx context.Context, rawToken string, newPassword string) error {
	if rawToken == "" {
		return apperr.InvalidOrExpired("Token inválido ou expirado")
	}

	digest, err := service.minter.DigestResetToken(rawToken)
	if err != nil {
		return err
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return err
	}

	redeemed, err := service.store.RedeemResetToken(ctx, digest, passwordHash, service.now())
	if err != nil {
		return err
	}
	if !redeemed {
		service.logger.InfoContext(ctx, "reset_confirm_rejected")
		return apperr.InvalidOrExpired("Token inválido ou expirado")
	}

	service.logger.InfoContext(ctx, "client_password_reset")
	return nil
}

// # Internal Helpers

// deliver hands a lifecycle email to the mailer and logs the actionable link
// (with a masked recipient) whenever delivery does not happen.
func (service *Service) deliver(ctx context.Context, kind mailer.Kind, recipient string, rawToken string) {
	if service.mailer.Send(ctx, kind, recipient, rawToken) {
		return
	}
	service.logger.WarnContext(ctx, "email_delivery_fallback",
		slog.String("kind", string(kind)),
		slog.String("recipient", sec.MaskEmail(recipient)),
		slog.String("link", service.links.For(kind, rawToken)),
	)
}

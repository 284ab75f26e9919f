// Copyright (c) 2026 Atimus. All rights reserved.

package clients

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atimus/edital-api/internal/platform/ratelimit"
	requestutil "github.com/atimus/edital-api/internal/platform/request"
	"github.com/atimus/edital-api/internal/platform/respond"
	"github.com/atimus/edital-api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the client-facing HTTP endpoints (Portuguese routes).
//
// # Scope
//
// This handler manages every entry point of the client lifecycle:
// registration, email verification, login, session introspection, and the
// two-phase password reset. It is strictly responsible for transport
// concerns (status codes, cookies, JSON).
type Handler struct {
	service  *Service
	throttle *ratelimit.FixedWindow

	// loginPageURL is the frontend login surface; verification links land
	// here after the API consumes the token.
	loginPageURL string
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, throttle *ratelimit.FixedWindow, loginPageURL string) *Handler {
	return &Handler{service: service, throttle: throttle, loginPageURL: loginPageURL}
}

// Routes returns a [chi.Router] configured with the client routes.
//
// # Endpoints
//   - POST /cadastro          : Creates a new client account.
//   - GET  /verificar-email   : Consumes the emailed verification token.
//   - POST /login             : Authenticates and sets the session cookie.
//   - GET  /me                : Resolves the session cookie (rolling renewal).
//   - POST /recuperar-senha   : Starts the password reset flow.
//   - POST /redefinir-senha   : Completes the password reset flow.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/cadastro", handler.signup)
	router.Get("/verificar-email", handler.verifyEmail)
	router.Get("/me", handler.whoAmI)
	router.Post("/redefinir-senha", handler.confirmReset)

	// Credential-sensitive endpoints carry the Redis anti-flood throttle.
	router.With(handler.throttle.Middleware("cliente_login")).
		Post("/login", handler.login)
	router.With(handler.throttle.Middleware("recuperar_senha")).
		Post("/recuperar-senha", handler.requestReset)

	return router
}

// # Request Payloads

type signupRequest struct {
	Nome            string `json:"nome"`
	Email           string `json:"email"`
	Senha           string `json:"senha"`
	Telefone        string `json:"telefone"`
	CPFCNPJ         string `json:"cpf_cnpj"`
	AceiteTermos    bool   `json:"aceite_termos"`
	AceiteMarketing bool   `json:"aceite_marketing"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type requestResetRequest struct {
	Email string `json:"email"`
}

type confirmResetRequest struct {
	Token     string `json:"token"`
	NovaSenha string `json:"nova_senha"`
}

/*
Signup registers a new client account.

POST /cliente/cadastro

Description: Validates input (password bounds checked before any storage
access), creates the unverified account, and triggers the verification
email.

Request:
  - Body: signupRequest (Nome, Email, Senha, Telefone, CPFCNPJ, consents)

Response:
  - 201: Acknowledgement message
  - 400: Validation failure, or email/tax ID already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldNome, input.Nome).
		MaxLen(FieldNome, input.Nome, 120).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldSenha, input.Senha).
		MinLen(FieldSenha, input.Senha, PasswordMinLen).
		MaxLen(FieldSenha, input.Senha, PasswordMaxLen).
		Required(FieldCPFCNPJ, input.CPFCNPJ).
		TaxID(FieldCPFCNPJ, input.CPFCNPJ).
		Custom(FieldAceiteTermos, !input.AceiteTermos, "É necessário aceitar os termos de uso")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.service.Signup(request.Context(), SignupInput{
		Name:           input.Nome,
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Password:       input.Senha,
		Phone:          input.Telefone,
		TaxID:          input.CPFCNPJ,
		TermsAccepted:  input.AceiteTermos,
		MarketingOptIn: input.AceiteMarketing,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"msg": "Cadastro realizado. Verifique seu e-mail para ativar a conta.",
	})
}

/*
VerifyEmail consumes the emailed verification token.

GET /cliente/verificar-email?token=...

Description: The link is opened directly by the user's mail client, so
success redirects to the frontend login page instead of returning JSON.

Response:
  - 302: Redirect to the login page with ?verified=1
  - 400: Invalid or expired token
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	token := request.URL.Query().Get(FieldToken)

	if err := handler.service.VerifyEmail(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, withQueryParam(handler.loginPageURL, "verified=1"))
}

/*
Login authenticates a client and establishes a session.

POST /cliente/login

Description: Verifies credentials and injects the long-lived session cookie.
The cookie is HttpOnly, Secure, and SameSite=None because the frontend is
served from a different origin.

Request:
  - Body: loginRequest (Email, Senha)

Response:
  - 200: Acknowledgement and frontend redirect target
  - 401: Invalid credentials (same message for unknown email and wrong password)
  - 403: Email not verified
  - 429: Too many attempts from this address
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldSenha, input.Senha)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(),
		strings.ToLower(strings.TrimSpace(input.Email)), input.Senha)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session)

	respond.OK(writer, map[string]any{
		"msg":      "Login realizado com sucesso",
		"redirect": RedirectAfterLogin,
	})
}

/*
WhoAmI resolves the session cookie to the authenticated client.

GET /cliente/me

Description: Applies rolling renewal: when the session has less than 5 days
left, the expiry (and the cookie) is pushed back out to 30 days.

Response:
  - 200: Client profile (id, nome, email)
  - 401: Missing, unknown, or expired session
*/
func (handler *Handler) whoAmI(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.WhoAmI(request.Context(), sessionTokenFrom(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Re-issue the cookie so a renewed expiry reaches the browser.
	setSessionCookie(writer, session)

	respond.OK(writer, map[string]any{
		"id":    session.Account.ID,
		"nome":  session.Account.Name,
		"email": session.Account.Email,
	})
}

/*
RequestReset starts the password reset flow.

POST /cliente/recuperar-senha

Description: Always returns the same acknowledgement, whether or not the
email is registered, and regardless of a reset already being in flight.

Request:
  - Body: requestResetRequest (Email)

Response:
  - 200: Generic acknowledgement
  - 429: Too many attempts from this address
  - 500: Reset pepper not configured
*/
func (handler *Handler) requestReset(writer http.ResponseWriter, request *http.Request) {
	var input requestResetRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.service.RequestReset(request.Context(),
		strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"msg": "Se este e-mail estiver cadastrado, um link de recuperação foi enviado.",
	})
}

/*
ConfirmReset completes the password reset flow.

POST /cliente/redefinir-senha

Description: Password bounds are checked before the token is even looked up.
A successful reset invalidates the active session; the user logs in again
with the new password.

Request:
  - Body: confirmResetRequest (Token, NovaSenha)

Response:
  - 200: Acknowledgement
  - 400: Validation failure, or invalid/expired token
  - 500: Reset pepper not configured
*/
func (handler *Handler) confirmReset(writer http.ResponseWriter, request *http.Request) {
	var input confirmResetRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token).
		Required(FieldNovaSenha, input.NovaSenha).
		MinLen(FieldNovaSenha, input.NovaSenha, PasswordMinLen).
		MaxLen(FieldNovaSenha, input.NovaSenha, PasswordMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ConfirmReset(request.Context(), input.Token, input.NovaSenha); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"msg": "Senha redefinida com sucesso. Faça login novamente.",
	})
}

// # Internal Helpers

// setSessionCookie injects the session cookie for a live session.
func setSessionCookie(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     SessionCookiePath,
		Expires:  session.ExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// sessionTokenFrom extracts the session token from the request cookie.
func sessionTokenFrom(request *http.Request) string {
	cookie, err := request.Cookie(SessionCookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// withQueryParam appends a query parameter, respecting an existing query string.
func withQueryParam(url string, param string) string {
	if strings.Contains(url, "?") {
		return url + "&" + param
	}
	return url + "?" + param
}

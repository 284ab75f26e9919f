// Copyright (c) 2026 Atimus. All rights reserved.

package editais

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atimus/edital-api/internal/platform/middleware"
	requestutil "github.com/atimus/edital-api/internal/platform/request"
	"github.com/atimus/edital-api/internal/platform/respond"
	"github.com/atimus/edital-api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the editais HTTP endpoints.
//
// # Scope
//
// The read surface (listing, single edital, chat) is public. Mutations live
// in a separate route group under /admin and carry the bearer requirement.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the public catalog routes.
//
// # Endpoints
//   - GET /     : Lists all editais.
//   - GET /{id} : Returns a single edital.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	return router
}

// AdminRoutes returns a [chi.Router] with the catalog mutation routes. The
// admin frontend publishes against /admin/editais, so this router is mounted
// under the /admin tree, apart from the public reads.
//
// # Endpoints
//   - POST   /     : Publishes an edital.
//   - PUT    /{id} : Updates an edital.
//   - DELETE /{id} : Removes an edital.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAdmin)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type editalRequest struct {
	Titulo             string          `json:"titulo"`
	JSONData           json.RawMessage `json:"json_data"`
	ArquivosJSON       json.RawMessage `json:"arquivos_json"`
	DataFinalSubmissao *time.Time      `json:"data_final_submissao"`
	PDFURL             string          `json:"pdf_url"`
}

type chatRequest struct {
	Mensagem string `json:"mensagem"`
}

/*
List returns the whole catalog.

GET /editais

Response:
  - 200: Array of editais with share links, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	editais, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, editais)
}

/*
Get returns a single edital.

GET /editais/{id}

Response:
  - 200: The edital
  - 400: Malformed ID
  - 404: Unknown ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edital, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edital)
}

/*
Create publishes a new edital.

POST /admin/editais

Request:
  - Body: editalRequest

Response:
  - 201: The created edital with its share link
  - 400: Validation failure
  - 401/403: Missing or non-admin token
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input editalRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitulo, input.Titulo).
		MaxLen(FieldTitulo, input.Titulo, 300)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edital, err := handler.service.Create(request.Context(), EditalInput{
		Titulo:             input.Titulo,
		JSONData:           input.JSONData,
		ArquivosJSON:       input.ArquivosJSON,
		DataFinalSubmissao: input.DataFinalSubmissao,
		PDFURL:             input.PDFURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, edital)
}

/*
Update replaces the mutable fields of an edital.

PUT /admin/editais/{id}

Response:
  - 200: The updated edital
  - 400: Validation failure
  - 404: Unknown ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input editalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID(FieldID, id).
		Required(FieldTitulo, input.Titulo).
		MaxLen(FieldTitulo, input.Titulo, 300)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edital, err := handler.service.Update(request.Context(), id, EditalInput{
		Titulo:             input.Titulo,
		JSONData:           input.JSONData,
		ArquivosJSON:       input.ArquivosJSON,
		DataFinalSubmissao: input.DataFinalSubmissao,
		PDFURL:             input.PDFURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edital)
}

/*
Delete removes an edital.

DELETE /admin/editais/{id}

Response:
  - 204: Removed
  - 404: Unknown ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Chat answers a free-text question with matching editais.

POST /chat

Description: Mounted at the API root (not under /editais) because the
frontend widget predates the catalog routes.

Request:
  - Body: chatRequest (Mensagem)

Response:
  - 200: Reply text and up to 5 cited editais
  - 400: Empty message
*/
func (handler *Handler) Chat(writer http.ResponseWriter, request *http.Request) {
	var input chatRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMensagem, input.Mensagem).
		MaxLen(FieldMensagem, input.Mensagem, 500)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	answer, err := handler.service.Chat(request.Context(), input.Mensagem)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, answer)
}
